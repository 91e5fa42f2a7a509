package hospital

// Hospital represents a hospital listing
type Hospital struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Level        string   `json:"level"`
	Address      string   `json:"address"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	ContactPhone string   `json:"contactPhone"`
	Rating       float64  `json:"rating"`
	Distance     float64  `json:"distance"`
	Tags         []string `json:"tags"`
	Description  string   `json:"description"`
	WorkingHours string   `json:"workingHours"`
}

// Clone returns a copy that shares no slices with h
func (h *Hospital) Clone() *Hospital {
	if h == nil {
		return nil
	}
	out := *h
	if h.Tags != nil {
		out.Tags = append([]string(nil), h.Tags...)
	}
	return &out
}

// HasTag reports whether any tag of h contains sub
func (h *Hospital) HasTag(sub string) bool {
	for _, tag := range h.Tags {
		if containsFold(tag, sub) {
			return true
		}
	}
	return false
}

// HospitalCategory groups hospitals
type HospitalCategory struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Hospitals []*Hospital `json:"hospitals"`
}

// Department is a clinical department of a hospital
type Department struct {
	ID          string `json:"id"`
	HospitalID  string `json:"hospitalId"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Location is a point in decimal degrees
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SearchParams filters a hospital search
type SearchParams struct {
	Keyword  string    `json:"keyword,omitempty"`
	Location *Location `json:"location,omitempty"`
	// Radius in kilometers, zero means unbounded
	Radius float64 `json:"radius,omitempty"`
	Page   int     `json:"page,omitempty"`
	Size   int     `json:"size,omitempty"`
}

// NearbyParams locates hospitals around a point
type NearbyParams struct {
	Location *Location `json:"location,omitempty"`
	Radius   float64   `json:"radius,omitempty"`
	Limit    int       `json:"limit,omitempty"`
}

// Rating is a single user review across the five dimensions
type Rating struct {
	ID             string    `json:"id"`
	HospitalID     string    `json:"hospitalId"`
	UserID         string    `json:"userId"`
	MedicalQuality float64   `json:"medical_quality"`
	Service        float64   `json:"service"`
	Environment    float64   `json:"environment"`
	Efficiency     float64   `json:"efficiency"`
	Equipment      float64   `json:"equipment"`
	Comment        string    `json:"comment,omitempty"`
	CreatedAt      Timestamp `json:"createdAt"`
}

// RatingDimension describes one scored dimension
type RatingDimension struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RatingStatistics aggregates the ratings of one hospital
type RatingStatistics struct {
	MedicalQuality float64 `json:"medical_quality"`
	Service        float64 `json:"service"`
	Environment    float64 `json:"environment"`
	Efficiency     float64 `json:"efficiency"`
	Equipment      float64 `json:"equipment"`
	Overall        float64 `json:"overall"`
	Count          int     `json:"count"`
}

// HospitalRatings is the ratings view of one hospital
type HospitalRatings struct {
	Statistics    *RatingStatistics `json:"statistics"`
	RecentRatings []*Rating         `json:"recent_ratings"`
}

// RatingSubmitParams is a new review; every score must be in (0, 5]
type RatingSubmitParams struct {
	MedicalQuality float64 `json:"medical_quality"`
	Service        float64 `json:"service"`
	Environment    float64 `json:"environment"`
	Efficiency     float64 `json:"efficiency"`
	Equipment      float64 `json:"equipment"`
	Comment        string  `json:"comment,omitempty"`
}

// User is the signed-in account
type User struct {
	ID          string    `json:"id"`
	OpenID      string    `json:"openid"`
	Nickname    string    `json:"nickname"`
	AvatarURL   string    `json:"avatarUrl"`
	Phone       string    `json:"phone,omitempty"`
	Gender      int       `json:"gender"`
	CreatedAt   Timestamp `json:"createdAt"`
	UpdatedAt   Timestamp `json:"updatedAt"`
	LastLoginAt Timestamp `json:"lastLoginAt"`
	Status      int       `json:"status"`
}

// LoginParams carries the platform login code
type LoginParams struct {
	Code     string                 `json:"code"`
	UserInfo map[string]interface{} `json:"userInfo,omitempty"`
}

// LoginResponse is returned by a successful login
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// MessageType is the author of a chat message
type MessageType string

const (
	MessageTypeUser      MessageType = "user"
	MessageTypeAssistant MessageType = "assistant"
)

// Message is one chat turn
type Message struct {
	ID      string      `json:"id"`
	Type    MessageType `json:"type"`
	Content string      `json:"content"`
	// Timestamp is unix milliseconds
	Timestamp       int64       `json:"timestamp,omitempty"`
	Recommendations []*Hospital `json:"recommendations,omitempty"`
}

// SendMessageParams is a user chat turn
type SendMessageParams struct {
	Content   string `json:"content"`
	SessionID string `json:"session_id,omitempty"`
}

// favoriteResult is the body of favorite mutations
type favoriteResult struct {
	Success bool `json:"success"`
}
