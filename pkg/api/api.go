// Package api defines the wire types for the GOAT OS RPC surface.
//
// Procedures are served over the Connect protocol with a plain JSON codec,
// so these are ordinary JSON-tagged structs rather than generated protobuf
// messages. Field names mirror the procedure contracts one to one.
//
// All monetary amounts are integer minor units (cents); all timestamps are
// Unix seconds.
package api

// User is a staff account as seen over the wire. PasswordHash never leaves
// the server.
type User struct {
	Id        string `json:"id"`
	OrgId     string `json:"org_id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CreatedAt int64  `json:"created_at"`
}

// Athlete is a roster entry.
type Athlete struct {
	Id        string `json:"id"`
	OrgId     string `json:"org_id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

// TrainingGroup is a capacity-holding roster unit.
type TrainingGroup struct {
	Id          string `json:"id"`
	OrgId       string `json:"org_id"`
	Name        string `json:"name"`
	MaxCapacity *int64 `json:"max_capacity,omitempty"`
	CreatedAt   int64  `json:"created_at"`
}

// TrainingSession is a scheduled occurrence, optionally tied to a group.
type TrainingSession struct {
	Id          string `json:"id"`
	OrgId       string `json:"org_id"`
	GroupId     string `json:"group_id,omitempty"`
	Title       string `json:"title"`
	StartsAt    int64  `json:"starts_at"`
	MaxCapacity *int64 `json:"max_capacity,omitempty"`
	CreatedAt   int64  `json:"created_at"`
}

// Registration is an athlete's slot in a capacity holder.
type Registration struct {
	Id            string `json:"id"`
	OrgId         string `json:"org_id"`
	AthleteId     string `json:"athlete_id"`
	ReferenceType string `json:"reference_type"`
	ReferenceId   string `json:"reference_id"`
	Status        string `json:"status"`
	CreatedAt     int64  `json:"created_at"`
}

// WaitlistEntry is a queued registration attempt against a full holder.
type WaitlistEntry struct {
	Id            string `json:"id"`
	OrgId         string `json:"org_id"`
	AthleteId     string `json:"athlete_id"`
	ReferenceType string `json:"reference_type"`
	ReferenceId   string `json:"reference_id"`
	Priority      string `json:"priority"`
	Status        string `json:"status"`
	Position      int64  `json:"position"`
	Reason        string `json:"reason,omitempty"`
	Notes         string `json:"notes,omitempty"`
	ExpiresAt     int64  `json:"expires_at,omitempty"`
	CreatedAt     int64  `json:"created_at"`
}

// CashRegister is the daily cash drawer.
type CashRegister struct {
	Id             string `json:"id"`
	OrgId          string `json:"org_id"`
	Date           int64  `json:"date"`
	Status         string `json:"status"`
	OpeningBalance int64  `json:"opening_balance"`
	ClosingBalance *int64 `json:"closing_balance,omitempty"`
	Notes          string `json:"notes,omitempty"`
	CreatedAt      int64  `json:"created_at"`
}

// CashMovement is a signed cash transaction against a register.
type CashMovement struct {
	Id            string `json:"id"`
	RegisterId    string `json:"register_id"`
	OrgId         string `json:"org_id"`
	Type          string `json:"type"`
	Amount        int64  `json:"amount"`
	Description   string `json:"description,omitempty"`
	ReferenceType string `json:"reference_type"`
	ReferenceId   string `json:"reference_id"`
	RecordedBy    string `json:"recorded_by,omitempty"`
	CreatedAt     int64  `json:"created_at"`
}

// Payment is money received from an athlete.
type Payment struct {
	Id          string `json:"id"`
	OrgId       string `json:"org_id"`
	AthleteId   string `json:"athlete_id"`
	Amount      int64  `json:"amount"`
	Method      string `json:"method"`
	Description string `json:"description,omitempty"`
	RecordedBy  string `json:"recorded_by,omitempty"`
	CreatedAt   int64  `json:"created_at"`
}

// Expense is money the organization paid out.
type Expense struct {
	Id          string `json:"id"`
	OrgId       string `json:"org_id"`
	Amount      int64  `json:"amount"`
	Method      string `json:"method"`
	Description string `json:"description,omitempty"`
	RecordedBy  string `json:"recorded_by,omitempty"`
	CreatedAt   int64  `json:"created_at"`
}

// --- AuthService ---

// RegisterRequest signs up a new organization with its first admin user.
type RegisterRequest struct {
	OrganizationName string `json:"organization_name"`
	Email            string `json:"email"`
	Name             string `json:"name"`
	Password         string `json:"password"`
}

type RegisterResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// --- RosterService ---

type CreateAthleteRequest struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type CreateAthleteResponse struct {
	Athlete *Athlete `json:"athlete"`
}

type ListAthletesRequest struct{}

type ListAthletesResponse struct {
	Athletes []*Athlete `json:"athletes"`
}

// --- TrainingService ---

type CreateGroupRequest struct {
	Name        string `json:"name"`
	MaxCapacity *int64 `json:"max_capacity,omitempty"`
}

type CreateGroupResponse struct {
	Group *TrainingGroup `json:"group"`
}

type CreateSessionRequest struct {
	GroupId     string `json:"group_id,omitempty"`
	Title       string `json:"title"`
	StartsAt    int64  `json:"starts_at"`
	MaxCapacity *int64 `json:"max_capacity,omitempty"`
}

type CreateSessionResponse struct {
	Session *TrainingSession `json:"session"`
}

// GenerateSessionsRequest creates Count weekly occurrences starting at
// FirstStartsAt, all sharing the same title and capacity.
type GenerateSessionsRequest struct {
	GroupId       string `json:"group_id,omitempty"`
	Title         string `json:"title"`
	FirstStartsAt int64  `json:"first_starts_at"`
	Count         int32  `json:"count"`
	MaxCapacity   *int64 `json:"max_capacity,omitempty"`
}

type GenerateSessionsResponse struct {
	Sessions []*TrainingSession `json:"sessions"`
}

type ListSessionsRequest struct {
	GroupId string `json:"group_id,omitempty"`
}

type ListSessionsResponse struct {
	Sessions []*TrainingSession `json:"sessions"`
}

// GetCapacityRequest asks for the live utilization of a capacity holder.
type GetCapacityRequest struct {
	ReferenceType string `json:"reference_type"`
	ReferenceId   string `json:"reference_id"`
}

type GetCapacityResponse struct {
	MaxCapacity          *int64 `json:"max_capacity,omitempty"`
	CurrentRegistrations int64  `json:"current_registrations"`
	// Remaining is -1 for unbounded holders.
	Remaining   int64 `json:"remaining"`
	HasCapacity bool  `json:"has_capacity"`
}

// --- RegistrationService ---

type CreateRegistrationRequest struct {
	AthleteId     string `json:"athlete_id"`
	ReferenceType string `json:"reference_type"`
	ReferenceId   string `json:"reference_id"`
}

// CreateRegistrationResponse carries either a registration (slot taken) or,
// when the holder was full and the org's waitlist feature is enabled, the
// waitlist entry the request degraded into.
type CreateRegistrationResponse struct {
	Registration  *Registration  `json:"registration,omitempty"`
	WaitlistEntry *WaitlistEntry `json:"waitlist_entry,omitempty"`
	Waitlisted    bool           `json:"waitlisted"`
}

type CancelRegistrationRequest struct {
	RegistrationId string `json:"registration_id"`
}

type CancelRegistrationResponse struct{}

// --- WaitlistService ---

type EnqueueWaitlistRequest struct {
	AthleteId     string `json:"athlete_id"`
	ReferenceType string `json:"reference_type"`
	ReferenceId   string `json:"reference_id"`
	Priority      string `json:"priority"`
	Reason        string `json:"reason,omitempty"`
	ExpiresAt     int64  `json:"expires_at,omitempty"`
}

type EnqueueWaitlistResponse struct {
	Entry *WaitlistEntry `json:"entry"`
}

type ListWaitlistRequest struct {
	ReferenceType string `json:"reference_type"`
	ReferenceId   string `json:"reference_id"`
}

type ListWaitlistResponse struct {
	Entries []*WaitlistEntry `json:"entries"`
}

type PromoteWaitlistRequest struct {
	EntryId string `json:"entry_id"`
}

type PromoteWaitlistResponse struct {
	Entry        *WaitlistEntry `json:"entry"`
	Registration *Registration  `json:"registration"`
}

type CancelWaitlistRequest struct {
	EntryId string `json:"entry_id"`
}

type CancelWaitlistResponse struct{}

type BulkUpdatePriorityRequest struct {
	EntryIds []string `json:"entry_ids"`
	Priority string   `json:"priority"`
}

type BulkUpdatePriorityResponse struct {
	UpdatedCount int64 `json:"updated_count"`
}

type BulkDeleteWaitlistRequest struct {
	EntryIds []string `json:"entry_ids"`
}

type BulkDeleteWaitlistResponse struct {
	DeletedCount int64 `json:"deleted_count"`
}

// --- CashRegisterService ---

type OpenRegisterRequest struct {
	// Date is any Unix timestamp within the register's day; the server
	// normalizes it to start of day UTC. Zero means today.
	Date           int64 `json:"date,omitempty"`
	OpeningBalance int64 `json:"opening_balance"`
}

type OpenRegisterResponse struct {
	Register *CashRegister `json:"register"`
}

type CloseRegisterRequest struct {
	RegisterId string `json:"register_id"`
	Notes      string `json:"notes,omitempty"`
}

type CloseRegisterResponse struct {
	Register *CashRegister `json:"register"`
}

type GetDailySummaryRequest struct {
	// Date is any Unix timestamp within the requested day; zero means today.
	Date int64 `json:"date,omitempty"`
}

type GetDailySummaryResponse struct {
	Date          int64 `json:"date"`
	TotalIncome   int64 `json:"total_income"`
	TotalExpense  int64 `json:"total_expense"`
	NetCashFlow   int64 `json:"net_cash_flow"`
	MovementCount int32 `json:"movement_count"`
}

type ListMovementsRequest struct {
	RegisterId string `json:"register_id"`
}

type ListMovementsResponse struct {
	Movements []*CashMovement `json:"movements"`
}

// --- PaymentService ---

type RecordPaymentRequest struct {
	AthleteId   string `json:"athlete_id"`
	Amount      int64  `json:"amount"`
	Method      string `json:"method"`
	Description string `json:"description,omitempty"`
}

type RecordPaymentResponse struct {
	Payment *Payment `json:"payment"`
}

type RecordExpenseRequest struct {
	Amount      int64  `json:"amount"`
	Method      string `json:"method"`
	Description string `json:"description,omitempty"`
}

type RecordExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type ListPaymentsRequest struct{}

type ListPaymentsResponse struct {
	Payments []*Payment `json:"payments"`
}
