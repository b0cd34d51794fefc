//go:build e2e

package booking_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"storeroom-api/internal/domain/user"
	"storeroom-api/tests/common/authtest"
	"storeroom-api/tests/common/dbtest"
	"storeroom-api/tests/common/httptest"
	"storeroom-api/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const bookingsURL = "/api/bookings"

var base = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

func day(n int) time.Time {
	return base.AddDate(0, 0, n)
}

type BookingSuite struct {
	e2e.SharedSuite
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

func (s *BookingSuite) token(userID uuid.UUID, role user.Role) string {
	return authtest.NewJWTHelper(s.Cfg.JWT).GenerateToken(s.T(), userID, role)
}

func bookingBody(itemID uuid.UUID, qty int, start, end time.Time) map[string]any {
	return map[string]any{
		"items":     []map[string]any{{"itemId": itemID.String(), "quantity": qty}},
		"startDate": start.Format(time.RFC3339),
		"endDate":   end.Format(time.RFC3339),
	}
}

type bookingEnvelope struct {
	Status  string `json:"status"`
	Results *int   `json:"results"`
	Data    struct {
		ID     string `json:"id"`
		UserID string `json:"userId"`
		Status string `json:"status"`
		Items  []struct {
			ItemID   string `json:"itemId"`
			ItemName string `json:"itemName"`
			Quantity int    `json:"quantity"`
		} `json:"items"`
	} `json:"data"`
}

type listEnvelope struct {
	Status  string `json:"status"`
	Results *int   `json:"results"`
	Data    []struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"data"`
}

func (s *BookingSuite) createBooking(token string, itemID uuid.UUID, qty int, start, end time.Time) bookingEnvelope {
	t := s.T()

	w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
		bookingBody(itemID, qty, start, end), token)
	require.Equal(t, http.StatusCreated, w.Code, "unexpected response: %s", w.Body.String())

	var created bookingEnvelope
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
	require.Equal(t, "success", created.Status)
	require.Equal(t, "pending", created.Data.Status)
	return created
}

func (s *BookingSuite) TestBookingLifecycle() {
	s.Run("member creates and reads own booking", func() {
		t := s.T()

		itemID := dbtest.CreateTestItem(t, s.Pool, "Folding table", 5, true)
		ownerID := uuid.New()
		ownerToken := s.token(ownerID, user.RoleMember)

		created := s.createBooking(ownerToken, itemID, 2, day(1), day(3))
		require.Equal(t, ownerID.String(), created.Data.UserID)
		require.Len(t, created.Data.Items, 1)
		require.Equal(t, "Folding table", created.Data.Items[0].ItemName)

		// Listed under /me
		mw := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"/me", nil, ownerToken)
		require.Equal(t, http.StatusOK, mw.Code)
		var mine listEnvelope
		require.NoError(t, httptest.DecodeResponseBody(t, mw.Body, &mine))
		require.NotNil(t, mine.Results)
		require.Equal(t, 1, *mine.Results)
		require.Equal(t, created.Data.ID, mine.Data[0].ID)

		// Readable by the owner, hidden from strangers
		detailURL := bookingsURL + "/" + created.Data.ID
		dw := httptest.PerformRequest(t, s.Router, http.MethodGet, detailURL, nil, ownerToken)
		require.Equal(t, http.StatusOK, dw.Code)

		strangerToken := s.token(uuid.New(), user.RoleMember)
		sw := httptest.PerformRequest(t, s.Router, http.MethodGet, detailURL, nil, strangerToken)
		require.Equal(t, http.StatusForbidden, sw.Code)
	})

	s.Run("conflicting window is rejected with the shortage detail", func() {
		t := s.T()

		itemID := dbtest.CreateTestItem(t, s.Pool, "Folding table", 5, true)
		s.createBooking(s.token(uuid.New(), user.RoleMember), itemID, 3, day(1), day(5))

		otherToken := s.token(uuid.New(), user.RoleMember)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			bookingBody(itemID, 3, day(3), day(6)), otherToken)
		require.Equal(t, http.StatusConflict, w.Code, "unexpected response: %s", w.Body.String())

		var conflict struct {
			Detail []struct {
				ItemName  string `json:"item_name"`
				Requested int    `json:"requested"`
				Available int    `json:"available"`
			} `json:"detail"`
		}
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &conflict))
		require.Len(t, conflict.Detail, 1)
		require.Equal(t, "Folding table", conflict.Detail[0].ItemName)
		require.Equal(t, 3, conflict.Detail[0].Requested)
		require.Equal(t, 2, conflict.Detail[0].Available)

		// Only one booking was admitted
		require.Equal(t, 1, dbtest.CountBookings(t, s.Pool))

		// The remaining quantity still fits
		s.createBooking(otherToken, itemID, 2, day(3), day(6))
	})

	s.Run("back-to-back bookings do not conflict", func() {
		t := s.T()

		itemID := dbtest.CreateTestItem(t, s.Pool, "Projector", 3, true)
		token := s.token(uuid.New(), user.RoleMember)

		s.createBooking(token, itemID, 3, day(1), day(5))
		s.createBooking(token, itemID, 3, day(5), day(9))
		require.Equal(t, 2, dbtest.CountBookings(t, s.Pool))
	})

	s.Run("status lifecycle with role checks", func() {
		t := s.T()

		itemID := dbtest.CreateTestItem(t, s.Pool, "PA speaker set", 2, true)
		ownerID := uuid.New()
		ownerToken := s.token(ownerID, user.RoleMember)
		adminToken := s.token(uuid.New(), user.RoleAdmin)

		created := s.createBooking(ownerToken, itemID, 1, day(1), day(3))
		statusURL := fmt.Sprintf("%s/%s/status", bookingsURL, created.Data.ID)

		// Owner cannot approve
		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, statusURL,
			map[string]string{"status": "approved"}, ownerToken)
		require.Equal(t, http.StatusForbidden, w.Code)

		// Admin approves
		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, statusURL,
			map[string]string{"status": "approved"}, adminToken)
		require.Equal(t, http.StatusOK, w.Code)
		var updated bookingEnvelope
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &updated))
		require.Equal(t, "approved", updated.Data.Status)

		// Owner cannot cancel once approved
		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, statusURL,
			map[string]string{"status": "cancelled"}, ownerToken)
		require.Equal(t, http.StatusForbidden, w.Code)

		// Admin can
		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, statusURL,
			map[string]string{"status": "cancelled"}, adminToken)
		require.Equal(t, http.StatusOK, w.Code)

		// Cancelled is terminal
		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, statusURL,
			map[string]string{"status": "pending"}, adminToken)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	s.Run("rejection frees capacity for a new booking", func() {
		t := s.T()

		itemID := dbtest.CreateTestItem(t, s.Pool, "Projector", 3, true)
		adminToken := s.token(uuid.New(), user.RoleAdmin)

		created := s.createBooking(s.token(uuid.New(), user.RoleMember), itemID, 3, day(1), day(5))

		blockedToken := s.token(uuid.New(), user.RoleMember)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			bookingBody(itemID, 1, day(2), day(4)), blockedToken)
		require.Equal(t, http.StatusConflict, w.Code)

		statusURL := fmt.Sprintf("%s/%s/status", bookingsURL, created.Data.ID)
		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, statusURL,
			map[string]string{"status": "rejected"}, adminToken)
		require.Equal(t, http.StatusOK, w.Code)

		s.createBooking(blockedToken, itemID, 3, day(2), day(4))
	})

	s.Run("admin listing with status filter", func() {
		t := s.T()

		itemID := dbtest.CreateTestItem(t, s.Pool, "Stacking chair", 40, true)
		adminToken := s.token(uuid.New(), user.RoleAdmin)

		first := s.createBooking(s.token(uuid.New(), user.RoleMember), itemID, 10, day(1), day(3))
		s.createBooking(s.token(uuid.New(), user.RoleMember), itemID, 10, day(1), day(3))

		statusURL := fmt.Sprintf("%s/%s/status", bookingsURL, first.Data.ID)
		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, statusURL,
			map[string]string{"status": "approved"}, adminToken)
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"?status=approved", nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code)
		var approved listEnvelope
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &approved))
		require.NotNil(t, approved.Results)
		require.Equal(t, 1, *approved.Results)
		require.Equal(t, first.Data.ID, approved.Data[0].ID)

		// Members cannot use the admin listing
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL, nil, s.token(uuid.New(), user.RoleMember))
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	s.Run("owner deletes a pending booking and frees capacity", func() {
		t := s.T()

		itemID := dbtest.CreateTestItem(t, s.Pool, "Extension cord reel", 1, true)
		ownerID := uuid.New()
		ownerToken := s.token(ownerID, user.RoleMember)

		created := s.createBooking(ownerToken, itemID, 1, day(1), day(3))

		blockedToken := s.token(uuid.New(), user.RoleMember)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			bookingBody(itemID, 1, day(1), day(3)), blockedToken)
		require.Equal(t, http.StatusConflict, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, bookingsURL+"/"+created.Data.ID, nil, ownerToken)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, 0, dbtest.CountBookings(t, s.Pool))

		s.createBooking(blockedToken, itemID, 1, day(1), day(3))
	})

	s.Run("validation and auth failures", func() {
		t := s.T()

		itemID := dbtest.CreateTestItem(t, s.Pool, "Folding table", 5, true)
		token := s.token(uuid.New(), user.RoleMember)

		// No token
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			bookingBody(itemID, 1, day(1), day(3)), "")
		require.Equal(t, http.StatusUnauthorized, w.Code)

		// Inverted dates
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			bookingBody(itemID, 1, day(3), day(1)), token)
		require.Equal(t, http.StatusBadRequest, w.Code)

		// Over the two-week cap
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			bookingBody(itemID, 1, day(0), day(15)), token)
		require.Equal(t, http.StatusBadRequest, w.Code)

		// Unknown item
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			bookingBody(uuid.New(), 1, day(1), day(3)), token)
		require.Equal(t, http.StatusNotFound, w.Code)

		require.Equal(t, 0, dbtest.CountBookings(t, s.Pool))
	})
}
