package entity

import "time"

type University struct {
	ID        string    `json:"id" firestore:"id"`
	Name      string    `json:"name" firestore:"name"`
	IsActive  bool      `json:"is_active" firestore:"isActive"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

// Campus is the institution reference attached to users and listings. It is
// used both for filtering browse results and as the signup lookup table.
type Campus struct {
	ID           string    `json:"id" firestore:"id"`
	UniversityID string    `json:"university_id,omitempty" firestore:"universityId,omitempty"`
	Name         string    `json:"name" firestore:"name"`
	IsActive     bool      `json:"is_active" firestore:"isActive"`
	CreatedAt    time.Time `json:"created_at" firestore:"createdAt"`
}
