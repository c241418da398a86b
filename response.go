package threads

// Wire shapes mirror the GraphQL response bodies field for field. Each one
// decodes strictly through decodeObject and is turned into a public type by
// a pure conversion function below.

type response[T any] struct {
	Data T
}

func (r *response[T]) UnmarshalJSON(data []byte) error {
	return decodeObject(data, required("data", &r.Data))
}

type profileResponse struct {
	UserData userFragment
}

func (r *profileResponse) UnmarshalJSON(data []byte) error {
	return decodeObject(data, required("userData", &r.UserData))
}

type userFragment struct {
	User wireProfile
}

func (f *userFragment) UnmarshalJSON(data []byte) error {
	return decodeObject(data, required("user", &f.User))
}

type threadsResponse struct {
	MediaData threadsFragment
}

func (r *threadsResponse) UnmarshalJSON(data []byte) error {
	return decodeObject(data, required("mediaData", &r.MediaData))
}

type threadsFragment struct {
	Threads []wireThread
}

func (f *threadsFragment) UnmarshalJSON(data []byte) error {
	return decodeObject(data, required("threads", &f.Threads))
}

type threadResponse struct {
	ContainingThread wireThread
	ReplyThreads     []wireThread
}

func (r *threadResponse) UnmarshalJSON(data []byte) error {
	return decodeObject(data,
		required("containing_thread", &r.ContainingThread),
		required("reply_threads", &r.ReplyThreads),
	)
}

type likersResponse struct {
	Likers likers
}

func (r *likersResponse) UnmarshalJSON(data []byte) error {
	return decodeObject(data, required("likers", &r.Likers))
}

type likers struct {
	Users []wireProfileDetail
}

func (l *likers) UnmarshalJSON(data []byte) error {
	return decodeObject(data, required("users", &l.Users))
}

type wireProfile struct {
	PK                   string
	IsPrivate            bool
	ProfilePicURL        string
	Username             string
	IsVerified           bool
	Biography            string
	FollowerCount        uint32
	BioLinks             []wireLink
	FullName             string
	HDProfilePicVersions []wireMedia
}

func (p *wireProfile) UnmarshalJSON(data []byte) error {
	return decodeObject(data,
		required("pk", &p.PK),
		required("is_private", &p.IsPrivate),
		required("profile_pic_url", &p.ProfilePicURL),
		required("username", &p.Username),
		required("is_verified", &p.IsVerified),
		required("biography", &p.Biography),
		required("follower_count", &p.FollowerCount),
		required("bio_links", &p.BioLinks),
		required("full_name", &p.FullName),
		required("hd_profile_pic_versions", &p.HDProfilePicVersions),
	)
}

type wireProfileDetail struct {
	ProfilePicURL string
	Username      string
	IsVerified    bool
	PK            string
}

func (p *wireProfileDetail) UnmarshalJSON(data []byte) error {
	return decodeObject(data,
		required("profile_pic_url", &p.ProfilePicURL),
		required("username", &p.Username),
		required("is_verified", &p.IsVerified),
		required("pk", &p.PK),
	)
}

type wireLink struct {
	URL string
}

func (l *wireLink) UnmarshalJSON(data []byte) error {
	return decodeObject(data, required("url", &l.URL))
}

type wireMedia struct {
	URL    string
	Width  uint32
	Height uint32
}

func (m *wireMedia) UnmarshalJSON(data []byte) error {
	return decodeObject(data,
		required("url", &m.URL),
		required("width", &m.Width),
		required("height", &m.Height),
	)
}

type wireThread struct {
	ID          string
	ThreadItems []wireThreadItem
}

func (t *wireThread) UnmarshalJSON(data []byte) error {
	return decodeObject(data,
		required("id", &t.ID),
		required("thread_items", &t.ThreadItems),
	)
}

type wireThreadItem struct {
	Post wirePost
}

func (i *wireThreadItem) UnmarshalJSON(data []byte) error {
	return decodeObject(data, required("post", &i.Post))
}

type wirePost struct {
	User            wireProfileDetail
	Images          imageVersions
	OriginalWidth   uint32
	OriginalHeight  uint32
	Caption         caption
	TakenAt         uint64
	LikeCount       uint32
	TextPostAppInfo postMeta
}

func (p *wirePost) UnmarshalJSON(data []byte) error {
	return decodeObject(data,
		required("user", &p.User),
		required("image_versions2", &p.Images),
		required("original_width", &p.OriginalWidth),
		required("original_height", &p.OriginalHeight),
		required("caption", &p.Caption),
		required("taken_at", &p.TakenAt),
		required("like_count", &p.LikeCount),
		required("text_post_app_info", &p.TextPostAppInfo),
	)
}

type postMeta struct {
	DirectReplyCount      *uint32
	LinkPreviewAttachment *wireCard
}

func (m *postMeta) UnmarshalJSON(data []byte) error {
	return decodeObject(data,
		optional("direct_reply_count", &m.DirectReplyCount),
		optional("link_preview_attachment", &m.LinkPreviewAttachment),
	)
}

type caption struct {
	Text string
}

func (c *caption) UnmarshalJSON(data []byte) error {
	return decodeObject(data, required("text", &c.Text))
}

type imageVersions struct {
	Candidates []wireMedia
}

func (v *imageVersions) UnmarshalJSON(data []byte) error {
	return decodeObject(data, required("candidates", &v.Candidates))
}

type wireCard struct {
	URL        string
	Title      string
	ImageURL   string
	DisplayURL string
	FaviconURL *string
}

func (c *wireCard) UnmarshalJSON(data []byte) error {
	return decodeObject(data,
		required("url", &c.URL),
		required("title", &c.Title),
		required("image_url", &c.ImageURL),
		required("display_url", &c.DisplayURL),
		optional("favicon_url", &c.FaviconURL),
	)
}

func newProfile(p wireProfile) Profile {
	links := make([]Link, len(p.BioLinks))
	for i, link := range p.BioLinks {
		links[i] = Link{URL: link.URL}
	}

	return Profile{
		ID:                   p.PK,
		Username:             p.Username,
		FullName:             p.FullName,
		Biography:            p.Biography,
		IsVerified:           p.IsVerified,
		IsPrivate:            p.IsPrivate,
		FollowerCount:        int(p.FollowerCount),
		ProfilePicURL:        p.ProfilePicURL,
		HDProfilePicVersions: newMediaList(p.HDProfilePicVersions),
		BioLinks:             links,
	}
}

func newProfileDetail(p wireProfileDetail) ProfileDetail {
	return ProfileDetail{
		ID:            p.PK,
		Username:      p.Username,
		IsVerified:    p.IsVerified,
		ProfilePicURL: p.ProfilePicURL,
	}
}

func newProfileDetails(users []wireProfileDetail) []ProfileDetail {
	details := make([]ProfileDetail, len(users))
	for i, user := range users {
		details[i] = newProfileDetail(user)
	}
	return details
}

func newMediaList(candidates []wireMedia) []Media {
	medias := make([]Media, len(candidates))
	for i, m := range candidates {
		medias[i] = Media{URL: m.URL, Width: int(m.Width), Height: int(m.Height)}
	}
	return medias
}

func newThread(t wireThread) Thread {
	items := make([]ThreadItem, len(t.ThreadItems))
	for i, item := range t.ThreadItems {
		items[i] = newThreadItem(item.Post)
	}
	return Thread{ID: t.ID, Items: items}
}

func newThreads(threads []wireThread) []Thread {
	out := make([]Thread, len(threads))
	for i, t := range threads {
		out[i] = newThread(t)
	}
	return out
}

// newThreadItem drops the post-level original_width and original_height;
// only the per-candidate dimensions are kept.
func newThreadItem(p wirePost) ThreadItem {
	item := ThreadItem{
		Text:        p.Caption.Text,
		Likes:       int(p.LikeCount),
		PublishedAt: int64(p.TakenAt),
		Images:      newMediaList(p.Images.Candidates),
		User:        newProfileDetail(p.User),
	}
	if count := p.TextPostAppInfo.DirectReplyCount; count != nil {
		replies := int(*count)
		item.Replies = &replies
	}
	if card := p.TextPostAppInfo.LinkPreviewAttachment; card != nil {
		item.LinkCard = &Card{
			URL:        card.URL,
			Title:      card.Title,
			ImageURL:   card.ImageURL,
			DisplayURL: card.DisplayURL,
			FaviconURL: card.FaviconURL,
		}
	}
	return item
}
