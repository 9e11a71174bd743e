package models

type User struct {
	Id       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Session is the authenticated identity plus the bearer credential.
// Exactly one session is active per client; it is persisted to durable
// storage and restored on process start.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type Credentials struct {
	Username string
	Email    string
	Password string
}

// BlogSummary is one feed item. Immutable except for Likes/LikedByMe,
// which only the optimistic mutator changes.
type BlogSummary struct {
	Id        string
	UserId    string
	Title     string
	Content   string
	Image     string
	Username  string
	UserImage string
	Likes     int
	Comments  int
	LikedByMe bool
	CreatedAt string
}

type Blog struct {
	Id        string
	UserId    string
	Title     string
	Content   string
	Tags      []string
	Image     string
	Username  string
	UserImage string
	Likes     int
	Comments  int
	LikedByMe bool
	Editable  bool
	CreatedAt string
}

type Comment struct {
	Id            string
	BlogId        string
	AuthorId      string
	Author        string
	AuthorImage   string
	Content       string
	CreatedAt     string
	DeletableByMe bool
}

type Profile struct {
	Username   string
	Bio        string
	ProfilePic string
}

type UserInfo struct {
	Id         string
	Username   string
	Bio        string
	ProfilePic string
	BlogCount  int
}

// BlogDraft is the input for creating a blog. Image holds the raw bytes
// sent as the binary multipart part.
type BlogDraft struct {
	Title     string
	Content   string
	Tags      []string
	Image     []byte
	ImageName string
}

type BlogUpdate struct {
	BlogId    string
	Title     string
	Content   string
	Tags      []string
	Image     []byte // nil keeps the current image
	ImageName string
}

type ProfileUpdate struct {
	Bio       string
	Image     []byte
	ImageName string
}
