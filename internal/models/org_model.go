package models

import "time"

// Organization is an employer, school, or partner org that can post
// jobs, events, and scholarships. Plan and Verified jointly gate
// visibility on the public partner/school listings.
type Organization struct {
	ID                 string            `json:"id" firestore:"-"`
	Name               string            `json:"name" firestore:"name"`
	Type               string            `json:"type,omitempty" firestore:"type,omitempty"` // "employer", "school", "partner"
	Plan               string            `json:"plan,omitempty" firestore:"plan,omitempty"`
	Tier               string            `json:"tier,omitempty" firestore:"tier,omitempty"`
	Verified           bool              `json:"verified" firestore:"verified"`
	OnboardingComplete bool              `json:"onboardingComplete" firestore:"onboardingComplete"`
	Tagline            string            `json:"tagline,omitempty" firestore:"tagline,omitempty"`
	Description        string            `json:"description,omitempty" firestore:"description,omitempty"`
	Location           string            `json:"location,omitempty" firestore:"location,omitempty"`
	Province           string            `json:"province,omitempty" firestore:"province,omitempty"`
	Website            string            `json:"website,omitempty" firestore:"website,omitempty"`
	ContactEmail       string            `json:"contactEmail,omitempty" firestore:"contactEmail,omitempty"`
	Phone              string            `json:"phone,omitempty" firestore:"phone,omitempty"`
	Nation             string            `json:"nation,omitempty" firestore:"nation,omitempty"`
	TreatyTerritory    string            `json:"treatyTerritory,omitempty" firestore:"treatyTerritory,omitempty"`
	IndigenousGroups   []string          `json:"indigenousGroups,omitempty" firestore:"indigenousGroups,omitempty"`
	Tags               []string          `json:"tags,omitempty" firestore:"tags,omitempty"`
	Services           []string          `json:"services,omitempty" firestore:"services,omitempty"`
	SocialLinks        map[string]string `json:"socialLinks,omitempty" firestore:"socialLinks,omitempty"`
	LogoURL            string            `json:"logoUrl,omitempty" firestore:"logoUrl,omitempty"`
	BannerURL          string            `json:"bannerUrl,omitempty" firestore:"bannerUrl,omitempty"`
	SubscriptionStatus string            `json:"subscriptionStatus,omitempty" firestore:"subscriptionStatus,omitempty"`
	CreatedAt          time.Time         `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt          time.Time         `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}

// ActivityEntry is an append-only log line on an organization's
// activity subcollection.
type ActivityEntry struct {
	Type      string    `json:"type" firestore:"type"`
	Message   string    `json:"message" firestore:"message"`
	Timestamp time.Time `json:"timestamp" firestore:"timestamp,serverTimestamp"`
}
