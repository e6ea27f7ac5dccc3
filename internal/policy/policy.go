// Package policy принимает решения об авторизации для всех операций API.
// Решение — чистая функция от личности вызывающего, операции и целевого
// ресурса; никакого состояния между запросами.
package policy

import (
	"github.com/iggarsaudev/Api-IgLusShop/internal/domain"
	"github.com/iggarsaudev/Api-IgLusShop/pkg/e"
)

// Operation — закрытый перечень операций API, подлежащих авторизации.
type Operation int

const (
	OpListProducts Operation = iota
	OpGetProduct
	OpCreateProduct
	OpUpdateProduct
	OpDeleteProduct
	OpAttachProductImage

	OpListOutlet
	OpGetOutletProduct
	OpCreateOutletProduct
	OpUpdateOutletProduct
	OpDeleteOutletProduct

	OpListProviders
	OpGetProvider
	OpCreateProvider
	OpUpdateProvider
	OpDeleteProvider

	OpListReviews
	OpGetReview
	OpCreateReview
	OpUpdateReview
	OpDeleteReview

	OpListUsers
	OpGetUser
	OpCreateUser
	OpUpdateUser
	OpDeleteUser

	OpReadSelf
	OpLogout
)

// Resource — целевой ресурс операции, когда решение зависит от владения.
// Для операций без владельца передаётся nil.
type Resource interface {
	OwnedBy(userID int64) bool
}

// публичные операции: доступны и анонимным вызывающим
var publicOps = map[Operation]bool{
	OpListProducts:     true,
	OpGetProduct:       true,
	OpListOutlet:       true,
	OpGetOutletProduct: true,
	OpListReviews:      true,
	OpGetReview:        true,
}

// операции владельца: помимо администратора их не разрешает никакая роль,
// только совпадение личности с владельцем ресурса
var ownerOps = map[Operation]bool{
	OpUpdateReview: true,
	OpDeleteReview: true,
}

// операции, требующие только аутентификации, без ограничения по роли
var authenticatedOps = map[Operation]bool{
	OpCreateReview: true,
	OpReadSelf:     true,
	OpLogout:       true,
}

// операции «сам или администратор»: пользователь меняет собственные
// name/email/password, администратор — любые записи
var selfOrAdminOps = map[Operation]bool{
	OpUpdateUser: true,
}

// Allow решает, разрешена ли операция op вызывающему caller над ресурсом res.
// Порядок проверок фиксирован: публичность → аутентификация → владение → роль.
// Возвращает nil, e.ErrUnauthenticated либо e.ErrForbidden.
func Allow(caller domain.Identity, op Operation, res Resource) error {
	if publicOps[op] {
		return nil
	}

	// 401 всегда раньше ролевых проверок
	if caller.Anonymous() {
		return e.ErrUnauthenticated
	}

	if ownerOps[op] {
		if res == nil || !res.OwnedBy(caller.ID) {
			return e.ErrForbidden
		}
		return nil
	}

	if authenticatedOps[op] {
		return nil
	}

	if selfOrAdminOps[op] {
		if caller.IsAdmin() || (res != nil && res.OwnedBy(caller.ID)) {
			return nil
		}
		return e.ErrForbidden
	}

	// всё остальное — административные операции
	if !caller.IsAdmin() {
		return e.ErrForbidden
	}

	return nil
}

// AllowRoleChange решает, вправе ли вызывающий менять поле role при
// обновлении пользователя. Поле, присланное не администратором, молча
// игнорируется: обновление остальных полей проходит, отказа нет.
func AllowRoleChange(caller domain.Identity) bool {
	return caller.IsAdmin()
}
