// Package domain defines the persistence models for the dormitory
// maintenance portal: residents, technicians, announcements, maintenance
// requests with their decline history, notifications, and request chat
// messages. These types are mapped with GORM and form the core data layer
// of the application.
package domain

import (
	"time"
)

// Role identifies the kind of authenticated caller.
type Role string

// Roles recognized by the session layer. Admin is a configured singleton
// account, not a database row.
const (
	RoleUser       Role = "user"
	RoleTechnician Role = "technician"
	RoleAdmin      Role = "admin"
)

// RequestStatus is the progress dimension of a maintenance request.
type RequestStatus string

// Request statuses. A request starts pending, may move between pending and
// in_progress, and freezes once complete.
const (
	StatusPending    RequestStatus = "pending"
	StatusInProgress RequestStatus = "in_progress"
	StatusComplete   RequestStatus = "complete"
)

// Valid reports whether s is one of the recognized statuses.
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusComplete:
		return true
	}
	return false
}

// Human returns the status with underscores replaced by spaces, as used in
// notification messages ("in_progress" -> "in progress").
func (s RequestStatus) Human() string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '_' {
			r = ' '
		}
		out = append(out, r)
	}
	return string(out)
}

// RequestPriority is the admin-controlled urgency of a request.
type RequestPriority string

// Request priorities. New requests default to medium.
const (
	PriorityUrgent      RequestPriority = "urgent"
	PriorityMedium      RequestPriority = "medium"
	PriorityLow         RequestPriority = "low"
	PriorityEnhancement RequestPriority = "enhancement"
)

// Valid reports whether p is one of the recognized priorities.
func (p RequestPriority) Valid() bool {
	switch p {
	case PriorityUrgent, PriorityMedium, PriorityLow, PriorityEnhancement:
		return true
	}
	return false
}

// NotificationType tags the lifecycle transition a notification records.
type NotificationType string

// Notification types. A technician decline reuses TypeAssigned: both events
// mean "assignment needs admin attention" and the feed groups them together.
const (
	TypeRequestCreated   NotificationType = "request_created"
	TypeAssigned         NotificationType = "assigned"
	TypeTechnicianAccept NotificationType = "technician_accept"
	TypeStatusUpdate     NotificationType = "status_update"
)

// User is a resident who reports maintenance issues.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Email: login identifier, stored lower-cased and unique.
//   - PasswordHash: bcrypt hash; never serialized.
//   - Building/Floor/Room: dormitory location used by technicians.
type User struct {
	ID           string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Name         string    `json:"name"       gorm:"type:varchar(120);not null"`
	Email        string    `json:"email"      gorm:"type:varchar(255);not null;uniqueIndex:ux_users_email"`
	PasswordHash string    `json:"-"          gorm:"type:varchar(255);not null"`
	Phone        string    `json:"phone"      gorm:"type:varchar(40);not null;default:''"`
	Building     string    `json:"building"   gorm:"type:varchar(40);not null;default:''"`
	Floor        string    `json:"floor"      gorm:"type:varchar(40);not null;default:''"`
	Room         string    `json:"room"       gorm:"type:varchar(40);not null;default:''"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Technician is a maintenance worker who accepts and resolves requests.
type Technician struct {
	ID           string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Name         string    `json:"name"       gorm:"type:varchar(120);not null"`
	Email        string    `json:"email"      gorm:"type:varchar(255);not null;uniqueIndex:ux_technicians_email"`
	PasswordHash string    `json:"-"          gorm:"type:varchar(255);not null"`
	Phone        string    `json:"phone"      gorm:"type:varchar(40);not null;default:''"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the database table name for Technician.
func (Technician) TableName() string { return "technicians" }

// Announcement is admin-authored content shown to all residents.
type Announcement struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Title     string    `json:"title"      gorm:"type:varchar(255);not null"`
	Body      string    `json:"body"       gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Announcement.
func (Announcement) TableName() string { return "announcements" }

// MaintenanceRequest is the central entity of the portal. It carries two
// orthogonal state dimensions: Status (pending/in_progress/complete) and the
// assignment sub-state (unassigned -> assigned -> accepted).
//
// Invariants:
//   - AcceptedByTechnician == true implies AssignedTechnicianID != nil.
//   - Any change of AssignedTechnicianID resets AcceptedByTechnician.
//   - Rows are never deleted.
type MaintenanceRequest struct {
	ID                   string          `json:"id"                     gorm:"type:char(36);primaryKey"`
	UserID               string          `json:"user_id"                gorm:"type:char(36);not null;index:idx_requests_user"`
	Title                string          `json:"title"                  gorm:"type:varchar(255);not null"`
	Description          string          `json:"description"            gorm:"type:text;not null"`
	Status               RequestStatus   `json:"status"                 gorm:"type:varchar(16);not null;default:'pending';check:status IN ('pending','in_progress','complete')"`
	Priority             RequestPriority `json:"priority"               gorm:"type:varchar(16);not null;default:'medium';check:priority IN ('urgent','medium','low','enhancement')"`
	PreferredAt          *time.Time      `json:"preferred_at,omitempty"`
	AssignedTechnicianID *string         `json:"assigned_technician_id" gorm:"type:char(36);index:idx_requests_assignee"`
	AcceptedByTechnician bool            `json:"accepted_by_technician" gorm:"not null;default:false"`
	TechnicianNotes      string          `json:"technician_notes"       gorm:"type:text;not null;default:''"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`

	// Declines holds the per-technician decline markers for this request.
	// Rows are preserved across reassignment so the admin can see who
	// already declined.
	Declines []RequestDecline `json:"-" gorm:"foreignKey:RequestID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for MaintenanceRequest.
func (MaintenanceRequest) TableName() string { return "maintenance_requests" }

// DeclinedTechnicianIDs returns the technician IDs recorded in Declines.
// The Declines association must have been preloaded.
func (r *MaintenanceRequest) DeclinedTechnicianIDs() []string {
	ids := make([]string, 0, len(r.Declines))
	for _, d := range r.Declines {
		ids = append(ids, d.TechnicianID)
	}
	return ids
}

// HasDeclined reports whether the technician previously declined this request.
func (r *MaintenanceRequest) HasDeclined(technicianID string) bool {
	for _, d := range r.Declines {
		if d.TechnicianID == technicianID {
			return true
		}
	}
	return false
}

// RequestDecline marks that a technician declined a request. The
// (request, technician) pair is unique; declining twice is a no-op upsert.
type RequestDecline struct {
	ID           string    `json:"id"            gorm:"type:char(36);primaryKey"`
	RequestID    string    `json:"request_id"    gorm:"type:char(36);not null;uniqueIndex:ux_declines_request_technician"`
	TechnicianID string    `json:"technician_id" gorm:"type:char(36);not null;uniqueIndex:ux_declines_request_technician"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName returns the database table name for RequestDecline.
func (RequestDecline) TableName() string { return "request_declines" }

// Notification is an immutable feed record emitted once per user-visible
// lifecycle transition. It is never updated or deleted.
type Notification struct {
	ID        string           `json:"id"         gorm:"type:char(36);primaryKey"`
	UserID    string           `json:"user_id"    gorm:"type:char(36);not null;index:idx_notifications_user"`
	RequestID string           `json:"request_id" gorm:"type:char(36);not null;index:idx_notifications_request"`
	Type      NotificationType `json:"type"       gorm:"type:varchar(32);not null;check:type IN ('request_created','assigned','technician_accept','status_update')"`
	Title     string           `json:"title"      gorm:"type:varchar(255);not null"`
	Message   string           `json:"message"    gorm:"type:text;not null"`
	CreatedAt time.Time        `json:"created_at"`
}

// TableName returns the database table name for Notification.
func (Notification) TableName() string { return "notifications" }

// ChatMessage is one utterance in the per-request chat between the owning
// resident and the accepted technician. Append-only.
type ChatMessage struct {
	ID         string    `json:"id"          gorm:"type:char(36);primaryKey"`
	RequestID  string    `json:"request_id"  gorm:"type:char(36);not null;index:idx_chat_request,priority:1"`
	SenderRole Role      `json:"sender_role" gorm:"type:varchar(16);not null;check:sender_role IN ('user','technician')"`
	SenderID   string    `json:"sender_id"   gorm:"type:char(36);not null"`
	Body       string    `json:"body"        gorm:"type:text;not null"`
	CreatedAt  time.Time `json:"created_at"  gorm:"index:idx_chat_request,priority:2"`
}

// TableName returns the database table name for ChatMessage.
func (ChatMessage) TableName() string { return "chat_messages" }
