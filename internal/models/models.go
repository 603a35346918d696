package models

import (
	"time"

	"github.com/lib/pq"
)

// Роли пользователей
const (
	RoleStudent          = "student"
	RoleCouncilOfficer   = "council-officer"
	RoleCommitteeOfficer = "committee-officer"
	RoleFaculty          = "faculty"
)

// Типы объявлений
const (
	AnnouncementNews        = "News"
	AnnouncementMeeting     = "Meeting"
	AnnouncementAchievement = "Achievement"
	AnnouncementGeneral     = "General"
)

type User struct {
	UserID         string    `json:"userId" db:"user_id"`
	StudentNumber  string    `json:"studentNumber" db:"student_number"`
	LastName       string    `json:"lastName" db:"last_name"`
	FirstName      string    `json:"firstName" db:"first_name"`
	MiddleName     string    `json:"middleName,omitempty" db:"middle_name"`
	PasswordHash   string    `json:"-" db:"password_hash"`
	Role           string    `json:"role" db:"role"`
	YearLevel      int       `json:"yearLevel" db:"year_level"`
	IsMember       bool      `json:"isMember" db:"is_member"`
	MembershipType *string   `json:"membershipType" db:"membership_type"`
	ProfilePicture string    `json:"profilePicture,omitempty" db:"profile_picture"`
	IsActive       bool      `json:"isActive" db:"is_active"`
	RegisteredBy   *string   `json:"registeredBy,omitempty" db:"registered_by"`
	FirstLogin     bool      `json:"firstLogin" db:"first_login"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// UserSummary - краткая карточка пользователя (автор контента, ответ логина)
type UserSummary struct {
	UserID         string `json:"userId" db:"user_id"`
	StudentNumber  string `json:"studentNumber" db:"student_number"`
	LastName       string `json:"lastName" db:"last_name"`
	FirstName      string `json:"firstName" db:"first_name"`
	Role           string `json:"role" db:"role"`
	ProfilePicture string `json:"profilePicture,omitempty" db:"profile_picture"`
}

func (u *User) Summary() *UserSummary {
	return &UserSummary{
		UserID:         u.UserID,
		StudentNumber:  u.StudentNumber,
		LastName:       u.LastName,
		FirstName:      u.FirstName,
		Role:           u.Role,
		ProfilePicture: u.ProfilePicture,
	}
}

type Announcement struct {
	AnnouncementID string         `json:"announcementId" db:"announcement_id"`
	Title          string         `json:"title" db:"title"`
	Description    string         `json:"description" db:"description"`
	Content        string         `json:"content" db:"content"`
	Type           string         `json:"type" db:"type"`
	AuthorID       string         `json:"authorId" db:"author_id"`
	ImageURL       *string        `json:"imageUrl" db:"image_url"`
	PublishDate    *time.Time     `json:"publishDate" db:"publish_date"`
	ExpiryDate     *time.Time     `json:"expiryDate" db:"expiry_date"`
	Views          int            `json:"views" db:"views"`
	IsPublished    bool           `json:"isPublished" db:"is_published"`
	Priority       string         `json:"priority" db:"priority"`
	TargetAudience pq.StringArray `json:"targetAudience" db:"target_audience"`
	Time           string         `json:"time,omitempty" db:"time"`
	Location       string         `json:"location,omitempty" db:"location"`
	Organizer      string         `json:"organizer,omitempty" db:"organizer"`
	Contact        string         `json:"contact,omitempty" db:"contact"`
	Attendees      pq.StringArray `json:"attendees" db:"attendees"`
	Agenda         pq.StringArray `json:"agenda" db:"agenda"`
	Awardees       Awardees       `json:"awardees" db:"awardees"`
	Attachments    Attachments    `json:"attachments" db:"attachments"`
	CreatedAt      time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time      `json:"updatedAt" db:"updated_at"`
	Author         *UserSummary   `json:"author,omitempty" db:"-"`
}

type Event struct {
	EventID        string         `json:"eventId" db:"event_id"`
	Title          string         `json:"title" db:"title"`
	Description    string         `json:"description" db:"description"`
	Content        string         `json:"content" db:"content"`
	Tags           pq.StringArray `json:"tags" db:"tags"`
	EventDate      time.Time      `json:"eventDate" db:"event_date"`
	Time           string         `json:"time,omitempty" db:"time"`
	Mode           string         `json:"mode" db:"mode"`
	Location       string         `json:"location,omitempty" db:"location"`
	Organizer      string         `json:"organizer,omitempty" db:"organizer"`
	Contact        string         `json:"contact,omitempty" db:"contact"`
	RsvpLink       string         `json:"rsvpLink,omitempty" db:"rsvp_link"`
	Admissions     Admissions     `json:"admissions" db:"admissions"`
	RegStart       *time.Time     `json:"registrationStart" db:"reg_start"`
	RegEnd         *time.Time     `json:"registrationEnd" db:"reg_end"`
	CoverImage     *string        `json:"coverImage" db:"cover_image"`
	GalleryImages  pq.StringArray `json:"galleryImages" db:"gallery_images"`
	AuthorID       string         `json:"authorId" db:"author_id"`
	PublishDate    *time.Time     `json:"publishDate" db:"publish_date"`
	Views          int            `json:"views" db:"views"`
	IsPublished    bool           `json:"isPublished" db:"is_published"`
	Priority       string         `json:"priority" db:"priority"`
	TargetAudience pq.StringArray `json:"targetAudience" db:"target_audience"`
	CreatedAt      time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time      `json:"updatedAt" db:"updated_at"`
	Author         *UserSummary   `json:"author,omitempty" db:"-"`
}

type Merchandise struct {
	MerchandiseID string     `json:"merchandiseId" db:"merchandise_id"`
	Name          string     `json:"name" db:"name"`
	Description   string     `json:"description" db:"description"`
	PriceTiers    PriceTiers `json:"priceTiers" db:"price_tiers"`
	OrderLink     string     `json:"orderLink,omitempty" db:"order_link"`
	ImageURL      *string    `json:"imageUrl" db:"image_url"`
	IsAvailable   bool       `json:"isAvailable" db:"is_available"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at"`
}

type Testimonial struct {
	TestimonialID string    `json:"testimonialId" db:"testimonial_id"`
	Name          string    `json:"name" db:"name"`
	Role          string    `json:"role" db:"role"`
	Quote         string    `json:"quote" db:"quote"`
	ImageURL      *string   `json:"imageUrl" db:"image_url"`
	IsActive      bool      `json:"isActive" db:"is_active"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}
