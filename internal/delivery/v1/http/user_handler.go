package http

import (
	"net/http"

	"github.com/iggarsaudev/Api-IgLusShop/internal/usecase"
	"github.com/iggarsaudev/Api-IgLusShop/pkg/logger"
)

type UserHandler struct {
	userUsecase usecase.UserUC
	logger      logger.Logger
}

func NewUserHandler(userUsecase usecase.UserUC, logger logger.Logger) *UserHandler {
	return &UserHandler{userUsecase: userUsecase, logger: logger}
}

type createUserRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Role     *string `json:"role"`
}

type updateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

// list
//
//	@Summary	Список пользователей
//	@Tags		users
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}		UserResponse
//	@Failure	401	{object}	ErrorResponse
//	@Failure	403	{object}	ErrorResponse
//	@Router		/users [get]
func (u *UserHandler) list(w http.ResponseWriter, r *http.Request) {
	users, err := u.userUsecase.List(r.Context(), identityFrom(r.Context()))
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewArrUserResponse(users))
}

// get
//
//	@Summary	Пользователь по идентификатору
//	@Tags		users
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int	true	"ID пользователя"
//	@Success	200	{object}	UserResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/users/{id} [get]
func (u *UserHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	user, err := u.userUsecase.Get(r.Context(), identityFrom(r.Context()), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewUserResponse(user))
}

// create
//
//	@Summary		Создание пользователя администратором
//	@Description	Роль опциональна, по умолчанию user.
//	@Tags			users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			input	body		createUserRequest	true	"Данные пользователя"
//	@Success		201		{object}	map[string]interface{}
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ValidationErrorResponse
//	@Router			/users [post]
func (u *UserHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	id, err := u.userUsecase.Create(r.Context(), identityFrom(r.Context()), &usecase.CreateUserReq{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		u.logger.Warnf("create user failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, map[string]interface{}{
		"message": "user created successfully",
		"id":      id,
	})
}

// update
//
//	@Summary		Частичное обновление пользователя
//	@Description	Доступно самому пользователю и администратору. Поле role от не-администратора молча игнорируется.
//	@Tags			users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"ID пользователя"
//	@Param			input	body		updateUserRequest	true	"Изменяемые поля"
//	@Success		200		{object}	map[string]interface{}
//	@Failure		403		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ValidationErrorResponse
//	@Router			/users/{id} [put]
func (u *UserHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	user, err := u.userUsecase.Update(r.Context(), identityFrom(r.Context()), id, &usecase.UpdateUserReq{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		u.logger.Warnf("update user %d failed: %s", id, err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"message": "user updated successfully",
		"user":    NewUserResponse(user),
	})
}

// delete
//
//	@Summary	Удаление пользователя
//	@Tags		users
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int	true	"ID пользователя"
//	@Success	200	{object}	map[string]interface{}
//	@Failure	404	{object}	ErrorResponse
//	@Router		/users/{id} [delete]
func (u *UserHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := u.userUsecase.Delete(r.Context(), identityFrom(r.Context()), id); err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"message": "user deleted successfully",
	})
}
