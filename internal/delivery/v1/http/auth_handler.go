package http

import (
	"net/http"

	"github.com/iggarsaudev/Api-IgLusShop/internal/usecase"
	"github.com/iggarsaudev/Api-IgLusShop/pkg/logger"
)

type AuthHandler struct {
	authUsecase usecase.AuthUC
	userUsecase usecase.UserUC
	logger      logger.Logger
}

func NewAuthHandler(authUsecase usecase.AuthUC, userUsecase usecase.UserUC, logger logger.Logger) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase, userUsecase: userUsecase, logger: logger}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// register
//
//	@Summary		Регистрация нового пользователя
//	@Description	Создаёт пользователя с ролью user. Роль в запросе не принимается.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			input	body		registerRequest	true	"Данные пользователя"
//	@Success		201		{object}	map[string]interface{}	"Пользователь создан"
//	@Failure		409		{object}	ErrorResponse			"Email уже зарегистрирован"
//	@Failure		422		{object}	ValidationErrorResponse	"Ошибка валидации"
//	@Router			/register [post]
func (a *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	id, err := a.authUsecase.Register(r.Context(), &usecase.RegisterReq{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		a.logger.Warnf("register failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, map[string]interface{}{
		"message": "user registered successfully",
		"id":      id,
	})
}

// login
//
//	@Summary	Вход по email и паролю
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		input	body		loginRequest			true	"Учётные данные"
//	@Success	200		{object}	map[string]interface{}	"Выданный bearer-токен"
//	@Failure	401		{object}	ErrorResponse			"Неверные учётные данные"
//	@Router		/login [post]
func (a *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	res, err := a.authUsecase.Login(r.Context(), &usecase.LoginReq{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		a.logger.Warnf("login failed for %q: %s", req.Email, err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"message": "login successful",
		"token":   res.Token,
	})
}

// logout
//
//	@Summary	Выход: инвалидация предъявленного токена
//	@Tags		auth
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	map[string]interface{}
//	@Failure	401	{object}	ErrorResponse
//	@Router		/logout [post]
func (a *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	caller := identityFrom(r.Context())
	token := tokenFrom(r.Context())

	if err := a.authUsecase.Logout(r.Context(), caller, token); err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"message": "logged out successfully",
	})
}

// self
//
//	@Summary	Текущий аутентифицированный пользователь
//	@Tags		auth
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	UserResponse
//	@Failure	401	{object}	ErrorResponse
//	@Router		/user [get]
func (a *AuthHandler) self(w http.ResponseWriter, r *http.Request) {
	caller := identityFrom(r.Context())

	user, err := a.userUsecase.GetSelf(r.Context(), caller)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewUserResponse(user))
}
