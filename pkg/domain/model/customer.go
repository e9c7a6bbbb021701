package model

import "time"

// IdentityTypeOthers requires an explicit identity reference on the customer
const IdentityTypeOthers = "others"

// Customer represents a customer record of a single shop owner
type Customer struct {
	ID                string    `json:"id" firestore:"id"`
	UserID            string    `json:"user_id" firestore:"user_id"`
	Name              string    `json:"name" firestore:"name"`
	Email             string    `json:"email,omitempty" firestore:"email"`
	Phone             string    `json:"phone,omitempty" firestore:"phone"`
	Address           string    `json:"address,omitempty" firestore:"address"`
	IdentityType      string    `json:"identity_type,omitempty" firestore:"identity_type"`
	IdentityReference string    `json:"identity_reference,omitempty" firestore:"identity_reference"`
	IdentityDoc       string    `json:"identity_doc,omitempty" firestore:"identity_doc"`
	ReferredBy        string    `json:"referred_by,omitempty" firestore:"referred_by"`
	ReferralNotes     string    `json:"referral_notes,omitempty" firestore:"referral_notes"`
	Notes             string    `json:"notes,omitempty" firestore:"notes"`
	CreatedAt         time.Time `json:"created_at" firestore:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" firestore:"updated_at"`
}
