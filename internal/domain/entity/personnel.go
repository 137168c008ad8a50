package entity

import "time"

// Personnel representa a una persona física de una base. UserID es un vínculo débil (puede ser nil).
type Personnel struct {
	ID        string
	Name      string
	Rank      string
	UserID    *string
	BaseID    string
	CreatedAt time.Time
}

// LinkedTo informa si el registro está vinculado al usuario indicado.
func (p *Personnel) LinkedTo(userID string) bool {
	return p != nil && p.UserID != nil && *p.UserID == userID
}
