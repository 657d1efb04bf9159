package model

// Role tags assigned to users. A user may carry several tags; every
// freshly provisioned user starts with RoleStudent only.
const (
	RoleStudent    = "ROLE_STUDENT"
	RoleInstructor = "ROLE_INSTRUCTOR"
	RoleAdmin      = "ROLE_ADMIN"
)

// KnownRole reports whether the given tag belongs to the enumerated role set.
// Role updates are validated against this set; records that already carry an
// unknown tag are served as-is and never re-validated.
func KnownRole(tag string) bool {
	switch tag {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return true
	}
	return false
}

// User is a document in the `users` collection. The document id is the
// subject identifier issued by the identity provider, so one provider
// subject maps to exactly one user record.
//
// Fields:
//  ID          – provider subject identifier (document id).
//  Email       – email copied from the provider profile at provisioning.
//  DisplayName – display name copied from the provider profile.
//  Roles       – role tags; order carries no meaning.
type User struct {
	ID          string   `bson:"_id" json:"uid"`
	Email       string   `bson:"email" json:"email"`
	DisplayName string   `bson:"displayName" json:"displayName"`
	Roles       []string `bson:"roles" json:"roles"`
}

// HasRole reports whether the user carries the given role tag.
func (u User) HasRole(tag string) bool {
	for _, r := range u.Roles {
		if r == tag {
			return true
		}
	}
	return false
}
