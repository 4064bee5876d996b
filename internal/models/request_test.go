package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingRequest() AssetRequest {
	return AssetRequest{
		AssetID:        1,
		AssetName:      "Laptop",
		AssetType:      AssetReturnable,
		RequesterEmail: "emp@co.com",
		RequesterName:  "Emp",
		Status:         StatusPending,
		RequestDate:    time.Now(),
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from RequestStatus
		to   RequestStatus
		want bool
	}{
		{"pending to approved", StatusPending, StatusApproved, true},
		{"pending to rejected", StatusPending, StatusRejected, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"pending to returned", StatusPending, StatusReturned, false},
		{"approved to returned", StatusApproved, StatusReturned, true},
		{"approved to rejected", StatusApproved, StatusRejected, false},
		{"rejected is terminal", StatusRejected, StatusApproved, false},
		{"cancelled is terminal", StatusCancelled, StatusApproved, false},
		{"returned is terminal", StatusReturned, StatusPending, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusApproved.Terminal())
	assert.True(t, StatusRejected.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.True(t, StatusReturned.Terminal())
}

func TestApprove(t *testing.T) {
	r := pendingRequest()
	now := time.Now()

	require.NoError(t, r.Approve("hr@co.com", now))
	assert.Equal(t, StatusApproved, r.Status)
	require.NotNil(t, r.ApprovalDate)
	assert.Equal(t, now, *r.ApprovalDate)
	assert.Equal(t, "hr@co.com", r.ProcessedBy)

	// second approval must fail, nothing changes
	err := r.Approve("other@co.com", now.Add(time.Minute))
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, "hr@co.com", r.ProcessedBy)
}

func TestReject(t *testing.T) {
	t.Run("requires reason", func(t *testing.T) {
		r := pendingRequest()
		require.ErrorIs(t, r.Reject("hr@co.com", ""), ErrReasonRequired)
		assert.Equal(t, StatusPending, r.Status)
	})

	t.Run("stores reason", func(t *testing.T) {
		r := pendingRequest()
		require.NoError(t, r.Reject("hr@co.com", "out of budget"))
		assert.Equal(t, StatusRejected, r.Status)
		assert.Equal(t, "out of budget", r.RejectReason)
	})

	t.Run("rejecting approved fails", func(t *testing.T) {
		r := pendingRequest()
		require.NoError(t, r.Approve("hr@co.com", time.Now()))
		require.ErrorIs(t, r.Reject("hr@co.com", "too late"), ErrInvalidTransition)
	})
}

func TestCancel(t *testing.T) {
	t.Run("requester cancels pending", func(t *testing.T) {
		r := pendingRequest()
		require.NoError(t, r.Cancel("emp@co.com"))
		assert.Equal(t, StatusCancelled, r.Status)
	})

	t.Run("only requester", func(t *testing.T) {
		r := pendingRequest()
		require.ErrorIs(t, r.Cancel("someone@else.com"), ErrNotRequester)
		assert.Equal(t, StatusPending, r.Status)
	})

	t.Run("double cancel is rejected", func(t *testing.T) {
		r := pendingRequest()
		require.NoError(t, r.Cancel("emp@co.com"))
		require.ErrorIs(t, r.Cancel("emp@co.com"), ErrInvalidTransition)
		assert.Equal(t, StatusCancelled, r.Status)
	})
}

func TestReturn(t *testing.T) {
	t.Run("returnable after approval", func(t *testing.T) {
		r := pendingRequest()
		require.NoError(t, r.Approve("hr@co.com", time.Now()))

		now := time.Now()
		require.NoError(t, r.Return("emp@co.com", now))
		assert.Equal(t, StatusReturned, r.Status)
		require.NotNil(t, r.ReturnDate)
		assert.Equal(t, now, *r.ReturnDate)
	})

	t.Run("non-returnable is refused", func(t *testing.T) {
		r := pendingRequest()
		r.AssetType = AssetNonReturnable
		require.NoError(t, r.Approve("hr@co.com", time.Now()))
		require.ErrorIs(t, r.Return("emp@co.com", time.Now()), ErrNotReturnable)
		assert.Equal(t, StatusApproved, r.Status)
	})

	t.Run("pending cannot be returned", func(t *testing.T) {
		r := pendingRequest()
		require.ErrorIs(t, r.Return("emp@co.com", time.Now()), ErrInvalidTransition)
	})

	t.Run("already returned", func(t *testing.T) {
		r := pendingRequest()
		require.NoError(t, r.Approve("hr@co.com", time.Now()))
		require.NoError(t, r.Return("emp@co.com", time.Now()))
		require.ErrorIs(t, r.Return("emp@co.com", time.Now()), ErrInvalidTransition)
	})
}

func TestRequestLifecycleScenario(t *testing.T) {
	// employee requests, HR approves, employee returns
	r := AssetRequest{
		AssetID:        1,
		AssetName:      "Monitor",
		AssetType:      AssetReturnable,
		RequesterEmail: "emp@co.com",
		Status:         StatusPending,
		RequestDate:    time.Now(),
	}

	require.NoError(t, r.Approve("hr@co.com", time.Now()))
	assert.Equal(t, StatusApproved, r.Status)
	assert.NotNil(t, r.ApprovalDate)

	require.NoError(t, r.Return("emp@co.com", time.Now()))
	assert.Equal(t, StatusReturned, r.Status)
	assert.NotNil(t, r.ReturnDate)
	assert.True(t, r.Status.Terminal())
}

func TestPackageByName(t *testing.T) {
	p, ok := PackageByName("standard")
	require.True(t, ok)
	assert.Equal(t, 10, p.MemberLimit)

	_, ok = PackageByName("platinum")
	assert.False(t, ok)
}
