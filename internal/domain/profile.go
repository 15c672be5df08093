package domain

// Profile is the public profile document a user publishes under their own
// namespace.
type Profile struct {
	Name   string `json:"name"`
	Bio    string `json:"bio,omitempty"`
	Image  string `json:"image,omitempty"`
	Status string `json:"status,omitempty"`
}

// FollowedUser is one entry of a follow list, with the profile name when
// the profile could be fetched.
type FollowedUser struct {
	Name      string `json:"name,omitempty"`
	PublicKey string `json:"public_key"`
}
