package threads

import "time"

// ProfileDetail contains the minimum required information to display a profile.
type ProfileDetail struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	IsVerified    bool   `json:"is_verified"`
	ProfilePicURL string `json:"profile_pic_url"`
}

// Profile contains all the information available about a profile.
type Profile struct {
	ID                   string  `json:"id"`
	Username             string  `json:"username"`
	FullName             string  `json:"full_name"`
	Biography            string  `json:"biography"`
	IsVerified           bool    `json:"is_verified"`
	IsPrivate            bool    `json:"is_private"`
	FollowerCount        int     `json:"follower_count"`
	ProfilePicURL        string  `json:"profile_pic_url"`
	HDProfilePicVersions []Media `json:"hd_profile_pic_versions"`
	BioLinks             []Link  `json:"bio_links"`
}

// Link is a link to an external website.
type Link struct {
	URL string `json:"url"`
}

// Media is one rendition of an image.
type Media struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Card is a rich link preview attached to a post.
type Card struct {
	URL        string  `json:"url"`
	Title      string  `json:"title"`
	ImageURL   string  `json:"image_url"`
	DisplayURL string  `json:"display_url"`
	FaviconURL *string `json:"favicon_url,omitempty"`
}

// Thread is a thread of posts, in the order the server returned them.
type Thread struct {
	ID    string       `json:"id"`
	Items []ThreadItem `json:"items"`
}

// ThreadItem is a post in a thread.
//
// Replies and LinkCard are nil when the server did not send them.
type ThreadItem struct {
	Text        string        `json:"text"`
	Likes       int           `json:"likes"`
	PublishedAt int64         `json:"published_at"`
	Images      []Media       `json:"images"`
	User        ProfileDetail `json:"user"`
	Replies     *int          `json:"replies,omitempty"`
	LinkCard    *Card         `json:"link_card,omitempty"`
}

// PublishedTime returns PublishedAt as a UTC time.
func (i ThreadItem) PublishedTime() time.Time {
	return time.Unix(i.PublishedAt, 0).UTC()
}

// PostResponse is a single post together with its replies.
type PostResponse struct {
	Post    Thread   `json:"post"`
	Replies []Thread `json:"replies"`
}
