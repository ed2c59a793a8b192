package entity

import (
	"time"
)

type User struct {
	ID           string `json:"id" firestore:"id"`
	Email        string `json:"email" firestore:"email"`
	FullName     string `json:"full_name" firestore:"fullName"`
	BusinessName string `json:"business_name,omitempty" firestore:"businessName,omitempty"`
	AvatarURL    string `json:"avatar_url,omitempty" firestore:"avatarURL,omitempty"`
	CampusID     string `json:"campus_id" firestore:"campusId"`
	UniversityID string `json:"university_id,omitempty" firestore:"universityId,omitempty"`
	Role         string `json:"role" firestore:"role"`     // "student", "admin"
	Status       string `json:"status" firestore:"status"` // "active", "suspended"

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
