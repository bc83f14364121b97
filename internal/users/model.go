package users

import "time"

// Tier is a subscription plan.
type Tier string

const (
	TierFree    Tier = "free"
	TierPremium Tier = "premium"
)

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool {
	return t == TierFree || t == TierPremium
}

type User struct {
	ID                    string     `json:"id"`
	Email                 string     `json:"email"`
	FullName              string     `json:"fullName"`
	PictureURL            string     `json:"pictureUrl"`
	PasswordHash          string     `json:"-"`
	Tier                  Tier       `json:"tier"`
	SubscriptionExpiresAt *time.Time `json:"subscriptionExpiresAt,omitempty"`
	IsAdmin               bool       `json:"isAdmin"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

// IsPremium reports whether the subscription is active at now. A premium
// tier whose expiry has passed counts as free; nothing is written back.
func (u User) IsPremium(now time.Time) bool {
	if u.Tier != TierPremium {
		return false
	}
	return u.SubscriptionExpiresAt == nil || u.SubscriptionExpiresAt.After(now)
}

// EffectiveTier is the tier the user is entitled to at now.
func (u User) EffectiveTier(now time.Time) Tier {
	if u.IsPremium(now) {
		return TierPremium
	}
	return TierFree
}

// Profile is the public view of a user returned by /me.
type Profile struct {
	ID                    string     `json:"id"`
	Email                 string     `json:"email"`
	FullName              string     `json:"fullName"`
	PictureURL            string     `json:"pictureUrl,omitempty"`
	Tier                  Tier       `json:"tier"`
	IsPremium             bool       `json:"isPremium"`
	IsAdmin               bool       `json:"isAdmin"`
	IsGuest               bool       `json:"isGuest"`
	SubscriptionExpiresAt *time.Time `json:"subscriptionExpiresAt,omitempty"`
}

// ProfileAt builds the profile as of now.
func (u User) ProfileAt(now time.Time) Profile {
	return Profile{
		ID:                    u.ID,
		Email:                 u.Email,
		FullName:              u.FullName,
		PictureURL:            u.PictureURL,
		Tier:                  u.EffectiveTier(now),
		IsPremium:             u.IsPremium(now),
		IsAdmin:               u.IsAdmin,
		SubscriptionExpiresAt: u.SubscriptionExpiresAt,
	}
}
