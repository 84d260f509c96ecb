package feedback

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"parking-management/apperror"
	"parking-management/constants"
	"parking-management/database"
	bookingModel "parking-management/models/booking"
	feedbackModel "parking-management/models/feedback"
	userModel "parking-management/models/user"
	"parking-management/services"
	authTypes "parking-management/types/auth"
	feedbackTypes "parking-management/types/feedback"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string, role constants.Role) authTypes.CurrentUser {
	t.Helper()

	seeded := userModel.User{
		Uuid:     uuid.NewString(),
		Username: username,
		Email:    username + "@example.com",
		Password: "not-a-real-hash",
		Role:     role,
	}
	if err := db.Create(&seeded).Error; err != nil {
		t.Fatalf("failed to seed user %s: %v", username, err)
	}
	return authTypes.CurrentUser{
		ID:       seeded.ID,
		Uuid:     seeded.Uuid,
		Username: seeded.Username,
		Role:     seeded.Role,
	}
}

func seedBooking(t *testing.T, db *gorm.DB, userID uint, floor int, label string) bookingModel.Booking {
	t.Helper()

	seeded := bookingModel.Booking{
		UserID:    userID,
		Floor:     floor,
		Label:     label,
		Status:    bookingModel.BookingStatusCompleted,
		StartTime: time.Now().Add(-time.Hour),
	}
	if err := db.Create(&seeded).Error; err != nil {
		t.Fatalf("failed to seed booking: %v", err)
	}
	return seeded
}

func seedFeedback(t *testing.T, db *gorm.DB, userID, bookingID uint, rating int, createdAt time.Time) feedbackModel.Feedback {
	t.Helper()

	seeded := feedbackModel.Feedback{
		UserID:    userID,
		BookingID: bookingID,
		Rating:    rating,
		CreatedAt: createdAt,
	}
	if err := db.Create(&seeded).Error; err != nil {
		t.Fatalf("failed to seed feedback: %v", err)
	}
	return seeded
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestCreateFeedback(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeedbackService(db)
	driver := seedUser(t, db, "alice", constants.RoleUser)
	booked := seedBooking(t, db, driver.ID, 1, "A1")

	created, err := svc.Create(driver, feedbackTypes.FeedbackCreateRequest{
		BookingID: booked.ID,
		Rating:    4,
		Comment:   strPtr("plenty of space"),
	})
	if err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}
	if created.Rating != 4 || created.BookingID != booked.ID || created.UserID != driver.ID {
		t.Fatalf("unexpected feedback: %+v", created)
	}
	if created.Comment == nil || *created.Comment != "plenty of space" {
		t.Fatalf("unexpected comment: %v", created.Comment)
	}
}

func TestCreateFeedback_RatingBounds(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeedbackService(db)
	driver := seedUser(t, db, "alice", constants.RoleUser)
	booked := seedBooking(t, db, driver.ID, 1, "A1")

	for _, rating := range []int{-1, 0, 6} {
		_, err := svc.Create(driver, feedbackTypes.FeedbackCreateRequest{
			BookingID: booked.ID,
			Rating:    rating,
		})
		if !errors.Is(err, apperror.ErrValidation) {
			t.Fatalf("expected validation error for rating %d, got %v", rating, err)
		}
	}

	for rating := 1; rating <= 5; rating++ {
		_, err := svc.Create(driver, feedbackTypes.FeedbackCreateRequest{
			BookingID: booked.ID,
			Rating:    rating,
		})
		if err != nil {
			t.Fatalf("expected rating %d to be accepted, got %v", rating, err)
		}
	}
}

func TestCreateFeedback_ForeignBookingIsNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeedbackService(db)
	owner := seedUser(t, db, "alice", constants.RoleUser)
	stranger := seedUser(t, db, "bob", constants.RoleUser)
	booked := seedBooking(t, db, owner.ID, 1, "A1")

	// Another user's booking collapses into "not found".
	_, err := svc.Create(stranger, feedbackTypes.FeedbackCreateRequest{
		BookingID: booked.ID,
		Rating:    3,
	})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected not found for foreign booking, got %v", err)
	}

	_, err = svc.Create(stranger, feedbackTypes.FeedbackCreateRequest{
		BookingID: 404,
		Rating:    3,
	})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected not found for missing booking, got %v", err)
	}
}

func TestCreateFeedback_AdminForbidden(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeedbackService(db)
	admin := seedUser(t, db, "root", constants.RoleAdmin)

	_, err := svc.Create(admin, feedbackTypes.FeedbackCreateRequest{BookingID: 1, Rating: 3})
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestListFeedback_ScopedByRole(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeedbackService(db)
	alice := seedUser(t, db, "alice", constants.RoleUser)
	bob := seedUser(t, db, "bob", constants.RoleUser)
	admin := seedUser(t, db, "root", constants.RoleAdmin)

	aliceBooking := seedBooking(t, db, alice.ID, 1, "A1")
	bobBooking := seedBooking(t, db, bob.ID, 2, "B1")
	seedFeedback(t, db, alice.ID, aliceBooking.ID, 5, time.Now())
	seedFeedback(t, db, bob.ID, bobBooking.ID, 2, time.Now())

	mine, err := svc.List(alice, feedbackTypes.FeedbackFilter{})
	if err != nil {
		t.Fatalf("expected list to succeed, got %v", err)
	}
	if len(mine) != 1 || mine[0].UserID != alice.ID {
		t.Fatalf("expected only alice's feedback, got %+v", mine)
	}

	all, err := svc.List(admin, feedbackTypes.FeedbackFilter{})
	if err != nil {
		t.Fatalf("expected admin list to succeed, got %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected admin to see 2 rows, got %d", len(all))
	}
}

func TestListFeedback_SlotFilter(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeedbackService(db)
	driver := seedUser(t, db, "alice", constants.RoleUser)

	first := seedBooking(t, db, driver.ID, 1, "A1")
	second := seedBooking(t, db, driver.ID, 2, "B1")
	seedFeedback(t, db, driver.ID, first.ID, 5, time.Now())
	seedFeedback(t, db, driver.ID, second.ID, 2, time.Now())

	rows, err := svc.List(driver, feedbackTypes.FeedbackFilter{Floor: intPtr(2), Label: strPtr("B1")})
	if err != nil {
		t.Fatalf("expected filtered list to succeed, got %v", err)
	}
	if len(rows) != 1 || rows[0].BookingID != second.ID {
		t.Fatalf("expected only floor 2 feedback, got %+v", rows)
	}
}

func TestListFeedback_EmptyIsNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeedbackService(db)
	driver := seedUser(t, db, "alice", constants.RoleUser)

	_, err := svc.List(driver, feedbackTypes.FeedbackFilter{})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected not found on empty feedback, got %v", err)
	}

	services.EmptyListIsError = false
	defer func() { services.EmptyListIsError = true }()

	rows, err := svc.List(driver, feedbackTypes.FeedbackFilter{})
	if err != nil {
		t.Fatalf("expected empty list with policy off, got %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected empty list, got %d rows", len(rows))
	}
}

func TestManageFeedback_AdminOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeedbackService(db)
	driver := seedUser(t, db, "alice", constants.RoleUser)

	_, err := svc.Manage(driver, feedbackTypes.FeedbackFilter{})
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("expected forbidden for non-admin, got %v", err)
	}
}

func TestManageFeedback_RatingRangeAndOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeedbackService(db)
	driver := seedUser(t, db, "alice", constants.RoleUser)
	admin := seedUser(t, db, "root", constants.RoleAdmin)

	booked := seedBooking(t, db, driver.ID, 1, "A1")
	base := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	seedFeedback(t, db, driver.ID, booked.ID, 1, base)
	seedFeedback(t, db, driver.ID, booked.ID, 3, base.Add(time.Hour))
	seedFeedback(t, db, driver.ID, booked.ID, 5, base.Add(2*time.Hour))

	rows, err := svc.Manage(admin, feedbackTypes.FeedbackFilter{
		MinRating: intPtr(2),
		MaxRating: intPtr(4),
	})
	if err != nil {
		t.Fatalf("expected manage to succeed, got %v", err)
	}
	if len(rows) != 1 || rows[0].Rating != 3 {
		t.Fatalf("expected single rating-3 row, got %+v", rows)
	}

	// Newest first when unfiltered.
	rows, err = svc.Manage(admin, feedbackTypes.FeedbackFilter{})
	if err != nil {
		t.Fatalf("expected manage to succeed, got %v", err)
	}
	if len(rows) != 3 || rows[0].Rating != 5 || rows[2].Rating != 1 {
		t.Fatalf("expected newest-first ordering, got %+v", rows)
	}
}

func TestManageFeedback_DateWindow(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeedbackService(db)
	driver := seedUser(t, db, "alice", constants.RoleUser)
	admin := seedUser(t, db, "root", constants.RoleAdmin)

	booked := seedBooking(t, db, driver.ID, 1, "A1")
	seedFeedback(t, db, driver.ID, booked.ID, 2, time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC))
	inWindow := seedFeedback(t, db, driver.ID, booked.ID, 4, time.Date(2026, 8, 15, 23, 30, 0, 0, time.UTC))
	seedFeedback(t, db, driver.ID, booked.ID, 5, time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC))

	rows, err := svc.Manage(admin, feedbackTypes.FeedbackFilter{
		From: strPtr("2026-08-12"),
		To:   strPtr("2026-08-15"),
	})
	if err != nil {
		t.Fatalf("expected manage to succeed, got %v", err)
	}
	if len(rows) != 1 || rows[0].ID != inWindow.ID {
		t.Fatalf("expected only the in-window row, got %+v", rows)
	}
}

func TestManageFeedback_InvalidDate(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeedbackService(db)
	admin := seedUser(t, db, "root", constants.RoleAdmin)

	_, err := svc.Manage(admin, feedbackTypes.FeedbackFilter{From: strPtr("12-08-2026")})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("expected validation error for malformed date, got %v", err)
	}
}

func TestGetByBooking(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeedbackService(db)
	alice := seedUser(t, db, "alice", constants.RoleUser)
	bob := seedUser(t, db, "bob", constants.RoleUser)
	admin := seedUser(t, db, "root", constants.RoleAdmin)

	booked := seedBooking(t, db, alice.ID, 1, "A1")
	seedFeedback(t, db, alice.ID, booked.ID, 5, time.Now())

	found, err := svc.GetByBooking(alice, booked.ID)
	if err != nil {
		t.Fatalf("expected owner fetch to succeed, got %v", err)
	}
	if found.Rating != 5 {
		t.Fatalf("unexpected feedback: %+v", found)
	}

	if _, err := svc.GetByBooking(bob, booked.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected not found for stranger, got %v", err)
	}

	if _, err := svc.GetByBooking(admin, booked.ID); err != nil {
		t.Fatalf("expected admin fetch to succeed, got %v", err)
	}
}
