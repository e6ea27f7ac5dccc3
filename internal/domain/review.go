package domain

import "time"

// Review описывает отзыв о товаре. UserID — владелец отзыва: единственная
// неадминистративная личность, которой разрешено его изменять и удалять.
type Review struct {
	ID        int64
	UserID    int64
	ProductID int64
	Comment   *string
	Rating    int32
	CreatedAt time.Time
	UpdatedAt *time.Time
}

func NewReview(userID, productID int64, rating int32, comment *string) *Review {
	return &Review{
		UserID:    userID,
		ProductID: productID,
		Rating:    rating,
		Comment:   comment,
	}
}

// OwnedBy сообщает, принадлежит ли отзыв указанному пользователю.
func (r *Review) OwnedBy(userID int64) bool {
	return r.UserID == userID
}
