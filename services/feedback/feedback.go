package feedback

import (
	"errors"
	"time"

	"parking-management/apperror"
	bookingModel "parking-management/models/booking"
	feedbackModel "parking-management/models/feedback"
	"parking-management/services"
	authTypes "parking-management/types/auth"
	feedbackTypes "parking-management/types/feedback"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// FeedbackService records and reads post-booking feedback. Rows are written
// once by the booking's owner and never mutated afterwards.
type FeedbackService struct {
	DB *gorm.DB
}

func NewFeedbackService(db *gorm.DB) *FeedbackService {
	return &FeedbackService{DB: db}
}

// Create records feedback against a booking owned by the current user.
// Existence and ownership are checked in one query, so a booking belonging
// to another user is indistinguishable from a missing one.
func (s *FeedbackService) Create(currentUser authTypes.CurrentUser, req feedbackTypes.FeedbackCreateRequest) (*feedbackModel.Feedback, error) {
	if currentUser.IsAdmin() {
		return nil, apperror.Forbiddenf("Admins cannot submit feedback")
	}

	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperror.Validationf("Rating must be between 1 and 5")
	}

	var owned bookingModel.Booking
	err := s.DB.Where("id = ? AND user_id = ?", req.BookingID, currentUser.ID).First(&owned).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("Booking not found or does not belong to current user")
		}
		return nil, err
	}

	created := feedbackModel.Feedback{
		UserID:    currentUser.ID,
		BookingID: req.BookingID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.DB.Create(&created).Error; err != nil {
		return nil, err
	}
	return &created, nil
}

// List returns feedback visible to the current user, optionally narrowed by
// booking or by the slot natural key (joined through the booking).
func (s *FeedbackService) List(currentUser authTypes.CurrentUser, filter feedbackTypes.FeedbackFilter) ([]feedbackModel.Feedback, error) {
	query := s.DB.Model(&feedbackModel.Feedback{})
	if !currentUser.IsAdmin() {
		query = query.Where("feedbacks.user_id = ?", currentUser.ID)
	}

	query = applySlotFilters(query, filter)
	if filter.BookingID != nil {
		query = query.Where("feedbacks.booking_id = ?", *filter.BookingID)
	}

	var rows []feedbackModel.Feedback
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	if services.EmptyResult(len(rows)) {
		return nil, apperror.NotFoundf("No feedback found")
	}
	return rows, nil
}

// Manage is the admin-only reporting variant: full filtering including the
// rating range and a created-at date window, newest first.
func (s *FeedbackService) Manage(currentUser authTypes.CurrentUser, filter feedbackTypes.FeedbackFilter) ([]feedbackModel.Feedback, error) {
	if !currentUser.IsAdmin() {
		return nil, apperror.Forbiddenf("Insufficient permissions")
	}

	query := s.DB.Model(&feedbackModel.Feedback{})
	query = applySlotFilters(query, filter)

	if filter.BookingID != nil {
		query = query.Where("feedbacks.booking_id = ?", *filter.BookingID)
	}
	if filter.MinRating != nil {
		query = query.Where("feedbacks.rating >= ?", *filter.MinRating)
	}
	if filter.MaxRating != nil {
		query = query.Where("feedbacks.rating <= ?", *filter.MaxRating)
	}

	if filter.From != nil {
		from, err := time.Parse(dateLayout, *filter.From)
		if err != nil {
			return nil, apperror.Validationf("Invalid 'from' date %q, expected YYYY-MM-DD", *filter.From)
		}
		query = query.Where("feedbacks.created_at >= ?", now.With(from).BeginningOfDay())
	}
	if filter.To != nil {
		to, err := time.Parse(dateLayout, *filter.To)
		if err != nil {
			return nil, apperror.Validationf("Invalid 'to' date %q, expected YYYY-MM-DD", *filter.To)
		}
		query = query.Where("feedbacks.created_at <= ?", now.With(to).EndOfDay())
	}

	var rows []feedbackModel.Feedback
	if err := query.Order("feedbacks.created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	if services.EmptyResult(len(rows)) {
		return nil, apperror.NotFoundf("No feedback found")
	}
	return rows, nil
}

// GetByBooking fetches the feedback row left for one booking. Admins see any
// booking's feedback, regular users only their own.
func (s *FeedbackService) GetByBooking(currentUser authTypes.CurrentUser, bookingID uint) (*feedbackModel.Feedback, error) {
	query := s.DB.Where("booking_id = ?", bookingID)
	if !currentUser.IsAdmin() {
		query = query.Where("user_id = ?", currentUser.ID)
	}

	var found feedbackModel.Feedback
	if err := query.First(&found).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("Feedback not found")
		}
		return nil, err
	}
	return &found, nil
}

// applySlotFilters narrows a feedback query by the slot natural key, joined
// through the owning booking's (floor, label) value pair.
func applySlotFilters(query *gorm.DB, filter feedbackTypes.FeedbackFilter) *gorm.DB {
	if filter.Floor == nil && filter.Label == nil {
		return query
	}

	query = query.Joins("JOIN bookings ON bookings.id = feedbacks.booking_id")
	if filter.Floor != nil {
		query = query.Where("bookings.floor = ?", *filter.Floor)
	}
	if filter.Label != nil {
		query = query.Where("bookings.label = ?", *filter.Label)
	}
	return query
}
