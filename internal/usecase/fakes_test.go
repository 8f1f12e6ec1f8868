package usecase

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"kangenshare/internal/domain/entity"
	"kangenshare/pkg/errors"
)

// In-memory repository fakes mirroring the Firestore adapters'
// observable behavior: soft-deleted users read as NOT_FOUND, list reads
// filter deleted and blocked accounts, and the follow edge updates both
// documents at once.

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[string]*entity.User{}}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok || user.IsDeleted() {
		return nil, errors.NotFound("User", nil)
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email == email && !user.IsDeleted() {
			copied := *user
			return &copied, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return errors.NotFound("User", nil)
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	user, ok := r.users[id]
	if !ok {
		return errors.NotFound("User", nil)
	}

	for key, value := range fields {
		switch key {
		case "name":
			user.Name = value.(string)
		case "displayName":
			user.DisplayName = value.(string)
		case "phone":
			user.Phone = value.(string)
		case "bio":
			user.Bio = value.(string)
		case "instagram":
			user.Instagram = value.(string)
		case "facebook":
			user.Facebook = value.(string)
		case "linkedin":
			user.LinkedIn = value.(string)
		case "website":
			user.Website = value.(string)
		case "profilePicture":
			user.ProfilePicture = value.(string)
		case "address":
			user.Address = *value.(*entity.Address)
		case "phLevels":
			user.PhLevels = value.([]float64)
		case "availability":
			user.Availability = value.(map[string]entity.DaySchedule)
		case "maintenance":
			user.Maintenance = *value.(*entity.Maintenance)
		case "isAcceptingRequests":
			user.IsAcceptingRequests = value.(bool)
		case "onboardingCompleted":
			user.OnboardingCompleted = value.(bool)
		case "onboardingStep":
			user.OnboardingStep = value.(int)
		case "distributorProofDocuments":
			user.DistributorProofDocuments = value.([]entity.ProofDocument)
		case "distributorStatus":
			user.DistributorStatus = entity.DistributorStatus(value.(string))
		case "distributorRejectionReason":
			user.DistributorRejectionReason = value.(string)
		case "distributorId":
			user.DistributorID = value.(string)
		case "isVerified":
			user.IsVerified = value.(bool)
		case "verificationReviewedAt":
			t := value.(time.Time)
			user.VerificationReviewedAt = &t
		case "verificationReviewedByAdminId":
			user.VerificationReviewedByAdminID = value.(string)
		case "isBlocked":
			user.IsBlocked = value.(bool)
		case "deletedAt":
			t := value.(time.Time)
			user.DeletedAt = &t
		default:
			return fmt.Errorf("fakeUserRepo: unhandled field %q", key)
		}
	}
	user.UpdatedAt = time.Now()
	return nil
}

func (r *fakeUserRepo) visible() []*entity.User {
	users := make([]*entity.User, 0, len(r.users))
	for _, user := range r.users {
		if user.IsDeleted() || user.IsBlocked {
			continue
		}
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}

func (r *fakeUserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, int64, error) {
	users := r.visible()
	return paginateUsers(users, limit, offset), int64(len(users)), nil
}

func (r *fakeUserRepo) ListHosts(ctx context.Context, city, country string, limit, offset int) ([]*entity.User, int64, error) {
	hosts := make([]*entity.User, 0)
	for _, user := range r.visible() {
		if !user.IsHost() || !user.IsAcceptingRequests {
			continue
		}
		if city != "" && user.Address.City != city {
			continue
		}
		if country != "" && user.Address.Country != country {
			continue
		}
		hosts = append(hosts, user)
	}
	return paginateUsers(hosts, limit, offset), int64(len(hosts)), nil
}

func (r *fakeUserRepo) ListByDistributorStatus(ctx context.Context, status entity.DistributorStatus, limit, offset int) ([]*entity.User, int64, error) {
	matched := make([]*entity.User, 0)
	for _, user := range r.visible() {
		if user.DistributorStatus == status {
			matched = append(matched, user)
		}
	}
	return paginateUsers(matched, limit, offset), int64(len(matched)), nil
}

func (r *fakeUserRepo) SetFollowEdge(ctx context.Context, followerID, targetID string, follow bool) error {
	follower, ok := r.users[followerID]
	if !ok {
		return errors.NotFound("User", nil)
	}
	target, ok := r.users[targetID]
	if !ok {
		return errors.NotFound("User", nil)
	}

	if follow {
		follower.Following = appendUnique(follower.Following, targetID)
		target.Followers = appendUnique(target.Followers, followerID)
	} else {
		follower.Following = removeElement(follower.Following, targetID)
		target.Followers = removeElement(target.Followers, followerID)
	}
	return nil
}

func paginateUsers(users []*entity.User, limit, offset int) []*entity.User {
	if offset >= len(users) {
		return []*entity.User{}
	}
	users = users[offset:]
	if limit > 0 && limit < len(users) {
		users = users[:limit]
	}
	return users
}

func appendUnique(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

func removeElement(ids []string, id string) []string {
	result := make([]string, 0, len(ids))
	for _, existing := range ids {
		if existing != id {
			result = append(result, existing)
		}
	}
	return result
}

type fakeRequestRepo struct {
	requests map[string]*entity.WaterRequest
	seq      int
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: map[string]*entity.WaterRequest{}}
}

func (r *fakeRequestRepo) Create(ctx context.Context, request *entity.WaterRequest) error {
	r.seq++
	request.ID = fmt.Sprintf("req-%d", r.seq)
	request.CreatedAt = time.Now()
	r.requests[request.ID] = request
	return nil
}

func (r *fakeRequestRepo) GetByID(ctx context.Context, id string) (*entity.WaterRequest, error) {
	request, ok := r.requests[id]
	if !ok {
		return nil, errors.NotFound("Request", nil)
	}
	copied := *request
	return &copied, nil
}

func (r *fakeRequestRepo) UpdateStatus(ctx context.Context, id string, status entity.RequestStatus) error {
	request, ok := r.requests[id]
	if !ok {
		return errors.NotFound("Request", nil)
	}
	request.Status = status
	return nil
}

func (r *fakeRequestRepo) ListByRequester(ctx context.Context, requesterID string, limit, offset int) ([]*entity.WaterRequest, int64, error) {
	return r.list(func(req *entity.WaterRequest) bool { return req.RequesterID == requesterID }, limit, offset)
}

func (r *fakeRequestRepo) ListByHost(ctx context.Context, hostID string, limit, offset int) ([]*entity.WaterRequest, int64, error) {
	return r.list(func(req *entity.WaterRequest) bool { return req.HostID == hostID }, limit, offset)
}

func (r *fakeRequestRepo) list(match func(*entity.WaterRequest) bool, limit, offset int) ([]*entity.WaterRequest, int64, error) {
	matched := make([]*entity.WaterRequest, 0)
	for _, request := range r.requests {
		if match(request) {
			matched = append(matched, request)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	if offset >= len(matched) {
		return []*entity.WaterRequest{}, total, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (r *fakeRequestRepo) SubscribePendingCount(ctx context.Context, hostID string) (<-chan int, error) {
	count := 0
	for _, request := range r.requests {
		if request.HostID == hostID && request.Status == entity.RequestPending {
			count++
		}
	}
	ch := make(chan int, 1)
	ch <- count
	close(ch)
	return ch, nil
}

type fakeMessageRepo struct {
	messages []*entity.Message
	seq      int
}

func (r *fakeMessageRepo) Create(ctx context.Context, message *entity.Message) error {
	r.seq++
	message.ID = fmt.Sprintf("msg-%d", r.seq)
	message.Timestamp = time.Now()
	r.messages = append(r.messages, message)
	return nil
}

func (r *fakeMessageRepo) ListByRequest(ctx context.Context, requestID string) ([]*entity.Message, error) {
	matched := make([]*entity.Message, 0)
	for _, message := range r.messages {
		if message.RequestID == requestID {
			matched = append(matched, message)
		}
	}
	return matched, nil
}

func (r *fakeMessageRepo) Subscribe(ctx context.Context, requestID string) (<-chan []*entity.Message, error) {
	messages, _ := r.ListByRequest(ctx, requestID)
	ch := make(chan []*entity.Message, 1)
	ch <- messages
	close(ch)
	return ch, nil
}

type fakeNotificationRepo struct {
	notifications []*entity.Notification
	seq           int
	failing       bool
}

func (r *fakeNotificationRepo) Create(ctx context.Context, notification *entity.Notification) error {
	if r.failing {
		return errors.Unavailable("notification store down", nil)
	}
	r.seq++
	notification.ID = fmt.Sprintf("notif-%d", r.seq)
	notification.CreatedAt = time.Now()
	r.notifications = append(r.notifications, notification)
	return nil
}

func (r *fakeNotificationRepo) List(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, int64, error) {
	matched := make([]*entity.Notification, 0)
	for _, notification := range r.notifications {
		if notification.RecipientID == userID {
			matched = append(matched, notification)
		}
	}
	// newest first, like the Firestore adapter
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	if offset >= len(matched) {
		return []*entity.Notification{}, total, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, userID, notificationID string) error {
	for _, notification := range r.notifications {
		if notification.ID == notificationID && notification.RecipientID == userID {
			notification.Read = true
			return nil
		}
	}
	return errors.NotFound("Notification", nil)
}

func (r *fakeNotificationRepo) Subscribe(ctx context.Context, userID string) (<-chan []*entity.Notification, error) {
	notifications, _, _ := r.List(ctx, userID, 0, 0)
	ch := make(chan []*entity.Notification, 1)
	ch <- notifications
	close(ch)
	return ch, nil
}

func (r *fakeNotificationRepo) byType(notificationType entity.NotificationType) []*entity.Notification {
	matched := make([]*entity.Notification, 0)
	for _, notification := range r.notifications {
		if notification.Type == notificationType {
			matched = append(matched, notification)
		}
	}
	return matched
}

// fakeReviewRepo replays the adapter's transactional contract against
// the shared user fake: missing host fails the whole write, otherwise
// the review lands together with the recomputed aggregate.
type fakeReviewRepo struct {
	users   *fakeUserRepo
	reviews []*entity.Review
	seq     int
}

func (r *fakeReviewRepo) AddReview(ctx context.Context, hostID string, review *entity.Review) error {
	host, ok := r.users.users[hostID]
	if !ok || host.IsDeleted() {
		return errors.NotFound("Host", nil)
	}

	host.Rating = entity.NextRating(host.Rating, host.Reviews, review.Rating)
	host.Reviews++

	r.seq++
	review.ID = fmt.Sprintf("review-%d", r.seq)
	review.Date = time.Now()
	r.reviews = append(r.reviews, review)
	return nil
}

func (r *fakeReviewRepo) ListByHost(ctx context.Context, hostID string, limit, offset int) ([]*entity.Review, int64, error) {
	matched := make([]*entity.Review, 0)
	for _, review := range r.reviews {
		if review.HostID == hostID {
			matched = append(matched, review)
		}
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return []*entity.Review{}, total, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

type fakeAuthClient struct {
	profiles map[string]*ProviderProfile
	seq      int
	revoked  []string
}

func (c *fakeAuthClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	c.seq++
	uid := fmt.Sprintf("uid-%d", c.seq)
	if c.profiles == nil {
		c.profiles = map[string]*ProviderProfile{}
	}
	c.profiles[uid] = &ProviderProfile{Email: email, DisplayName: displayName}
	return uid, nil
}

func (c *fakeAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	return "uid-" + token, nil
}

func (c *fakeAuthClient) GetProfile(ctx context.Context, uid string) (*ProviderProfile, error) {
	profile, ok := c.profiles[uid]
	if !ok {
		return nil, fmt.Errorf("no provider profile for %s", uid)
	}
	return profile, nil
}

func (c *fakeAuthClient) SignInWithEmailPassword(email, password string) (string, error) {
	return "token-" + email, nil
}

func (c *fakeAuthClient) RevokeTokens(ctx context.Context, uid string) error {
	c.revoked = append(c.revoked, uid)
	return nil
}

type fakeStorageClient struct {
	deleted []string
}

func (c *fakeStorageClient) UploadProfilePicture(ctx context.Context, userID string, file io.Reader, contentType string) (string, error) {
	return "https://storage.test/profilePictures/" + userID, nil
}

func (c *fakeStorageClient) DeleteProfilePicture(ctx context.Context, userID string) error {
	c.deleted = append(c.deleted, "profile:"+userID)
	return nil
}

func (c *fakeStorageClient) UploadProofDocument(ctx context.Context, userID, docID, fileName string, file io.Reader, contentType string) (string, error) {
	return "https://storage.test/distributorProofDocuments/" + userID + "/" + docID, nil
}

func (c *fakeStorageClient) DeleteProofDocument(ctx context.Context, userID, docID string) error {
	c.deleted = append(c.deleted, "proof:"+userID+"/"+docID)
	return nil
}

func approvedHost(id string) *entity.User {
	return &entity.User{
		ID:                  id,
		Email:               id + "@example.com",
		Name:                "Host " + id,
		DisplayName:         "Host " + id,
		DistributorStatus:   entity.DistributorApproved,
		DistributorID:       "dist-" + id,
		IsVerified:          true,
		IsAcceptingRequests: true,
		Availability:        entity.DefaultAvailability(),
		PhLevels:            []float64{8.5, 9.0, 9.5},
	}
}

func plainUser(id string) *entity.User {
	return &entity.User{
		ID:                  id,
		Email:               id + "@example.com",
		Name:                "User " + id,
		DisplayName:         "User " + id,
		DistributorStatus:   entity.DistributorNone,
		IsAcceptingRequests: true,
		Availability:        entity.DefaultAvailability(),
	}
}
