package model

import "time"

// Family groups the guests covered by a single invitation.  Each family
// receives one invitation code; RSVP state is tracked per family while
// individual guests carry their own seating assignment.
//
// Fields:
//  ID                  – primary key identifier.
//  FamilyName          – display name of the family/party.
//  ContactPerson       – person the invitation is addressed to.
//  Email               – optional contact email.
//  Phone               – contact phone (used for WhatsApp delivery).
//  MaxGuests           – seats reserved for this family on the guest list.
//  InvitationCode      – random code embedded in the invite URL.
//  InvitationSent      – whether the invitation was delivered.
//  SentDate            – when it was delivered (nil until sent).
//  Responded           – whether the family answered the RSVP.
//  ResponseDate        – when they answered (nil until responded).
//  Attending           – their answer (nil until responded).
//  DietaryRestrictions – optional free text.
//  SpecialMessage      – optional free text from the family.
//  CreatedAt           – creation timestamp.
//  UpdatedAt           – last update timestamp.
type Family struct {
	ID                  uint64     // families.id
	FamilyName          string     // families.family_name
	ContactPerson       string     // families.contact_person
	Email               *string    // families.email (nullable)
	Phone               string     // families.phone
	MaxGuests           uint32     // families.max_guests
	InvitationCode      string     // families.invitation_code
	InvitationSent      bool       // families.invitation_sent
	SentDate            *time.Time // families.sent_date (nullable)
	Responded           bool       // families.responded
	ResponseDate        *time.Time // families.response_date (nullable)
	Attending           *bool      // families.attending (nullable)
	DietaryRestrictions *string    // families.dietary_restrictions (nullable)
	SpecialMessage      *string    // families.special_message (nullable)
	CreatedAt           time.Time  // families.created_at
	UpdatedAt           time.Time  // families.updated_at
}

// Status derives the RSVP state shown on the admin dashboard.
func (f *Family) Status() string {
	switch {
	case !f.InvitationSent:
		return "PENDING"
	case !f.Responded:
		return "SENT"
	case f.Attending != nil && *f.Attending:
		return "CONFIRMED"
	default:
		return "DECLINED"
	}
}

// FamilyInfo is the wire representation of a family.
type FamilyInfo struct {
	ID                  uint64     `json:"id"`
	FamilyName          string     `json:"familyName"`
	ContactPerson       string     `json:"contactPerson"`
	Email               *string    `json:"email"`
	Phone               string     `json:"phone"`
	MaxGuests           uint32     `json:"maxGuests"`
	InvitationCode      string     `json:"invitationCode"`
	InvitationSent      bool       `json:"invitationSent"`
	SentDate            *time.Time `json:"sentDate"`
	Responded           bool       `json:"responded"`
	ResponseDate        *time.Time `json:"responseDate"`
	Attending           *bool      `json:"attending"`
	DietaryRestrictions *string    `json:"dietaryRestrictions"`
	SpecialMessage      *string    `json:"specialMessage"`
	Status              string     `json:"status"`
}

// Info builds the wire representation with the derived status filled in.
func (f *Family) Info() FamilyInfo {
	return FamilyInfo{
		ID:                  f.ID,
		FamilyName:          f.FamilyName,
		ContactPerson:       f.ContactPerson,
		Email:               f.Email,
		Phone:               f.Phone,
		MaxGuests:           f.MaxGuests,
		InvitationCode:      f.InvitationCode,
		InvitationSent:      f.InvitationSent,
		SentDate:            f.SentDate,
		Responded:           f.Responded,
		ResponseDate:        f.ResponseDate,
		Attending:           f.Attending,
		DietaryRestrictions: f.DietaryRestrictions,
		SpecialMessage:      f.SpecialMessage,
		Status:              f.Status(),
	}
}
