//go:build unit

package inventory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/google/go-cmp/cmp"
	"github.com/ijalalfrz/airline-booking-service/internal/pkg/airline"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var takenAt = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

func TestCache_Keys(t *testing.T) {
	c := &Cache{}

	assert.Equal(t, "booking:lock:RES1", c.GetLockKey("RES1"))
	assert.Equal(t, "inventory:segment:AC101", c.GetSnapshotKey("AC101"))
}

func TestCache_AcquireLock_Closure(t *testing.T) {
	acquireLockRequest := func(key string, timeout time.Duration, mockSetup func(m *MockRedisClient), want bool) func(t *testing.T) {
		return func(t *testing.T) {
			m := NewMockRedisClient(t)
			mockSetup(m)
			c := NewCache(m)

			got, err := c.AcquireLock(context.Background(), key, timeout)
			if err != nil {
				t.Fatalf("AcquireLock returned error: %v", err)
			}
			if got != want {
				t.Fatalf("expected %v, got %v", want, got)
			}
		}
	}

	t.Run("lock_acquired", acquireLockRequest("booking:lock:RES1", 5*time.Second, func(m *MockRedisClient) {
		m.On("SetNX", mock.Anything, "booking:lock:RES1", "1", 5*time.Second).Return(redis.NewBoolResult(true, nil))
	}, true))

	t.Run("lock_not_acquired", acquireLockRequest("booking:lock:RES1", 5*time.Second, func(m *MockRedisClient) {
		m.On("SetNX", mock.Anything, "booking:lock:RES1", "1", 5*time.Second).Return(redis.NewBoolResult(false, nil))
	}, false))
}

func TestCache_ReleaseLock(t *testing.T) {
	m := NewMockRedisClient(t)
	m.On("Del", mock.Anything, "booking:lock:RES1").Return(redis.NewIntResult(1, nil))

	require.NoError(t, NewCache(m).ReleaseLock(context.Background(), "booking:lock:RES1"))
}

func TestCache_SetSnapshot_Closure(t *testing.T) {
	setSnapshotRequest := func(snapshot Snapshot, exp time.Duration, mockSetup func(m *MockRedisClient), wantErr bool) func(t *testing.T) {
		return func(t *testing.T) {
			m := NewMockRedisClient(t)
			mockSetup(m)
			c := NewCache(m)

			err := c.SetSnapshot(context.Background(), snapshot, exp)
			if (err != nil) != wantErr {
				t.Fatalf("SetSnapshot error = %v, wantErr %v", err, wantErr)
			}
		}
	}

	snapshot := Snapshot{FlightID: "AC101", TakenAt: takenAt}

	t.Run("success", setSnapshotRequest(snapshot, 10*time.Minute, func(m *MockRedisClient) {
		m.On("Set", mock.Anything, "inventory:segment:AC101", mock.Anything, 10*time.Minute).Return(redis.NewStatusResult("OK", nil))
	}, false))

	t.Run("redis_down", setSnapshotRequest(snapshot, 10*time.Minute, func(m *MockRedisClient) {
		m.On("Set", mock.Anything, "inventory:segment:AC101", mock.Anything, 10*time.Minute).
			Return(redis.NewStatusResult("", errors.New("connection refused")))
	}, true))
}

func TestCache_GetSnapshot_Closure(t *testing.T) {
	getSnapshotRequest := func(flightID string, mockSetup func(m *MockRedisClient), want Snapshot, wantErr bool) func(t *testing.T) {
		return func(t *testing.T) {
			m := NewMockRedisClient(t)
			mockSetup(m)
			c := NewCache(m)

			got, err := c.GetSnapshot(context.Background(), flightID)
			if (err != nil) != wantErr {
				t.Fatalf("GetSnapshot error = %v, wantErr %v", err, wantErr)
			}
			if !wantErr {
				diff := cmp.Diff(want, got)
				if diff != "" {
					t.Fatalf("GetSnapshot mismatch (-want +got):\n%s", diff)
				}
			}
		}
	}

	want := Snapshot{
		FlightID:     "AC101",
		Capacity:     map[airline.CabinClass]int{airline.Economy: 150, airline.Business: 22},
		Availability: map[airline.CabinClass]int{airline.Economy: 149, airline.Business: 22},
		Passengers:   1,
		TakenAt:      takenAt,
	}

	t.Run("success", getSnapshotRequest("AC101", func(m *MockRedisClient) {
		m.On("Get", mock.Anything, "inventory:segment:AC101").Return(redis.NewStringResult(
			`{"flight_id":"AC101","capacity":{"Economy":150,"Business":22},"availability":{"Economy":149,"Business":22},"passengers":1,"taken_at":"2024-03-01T08:00:00Z"}`, nil))
	}, want, false))

	t.Run("cache_miss", getSnapshotRequest("AC101", func(m *MockRedisClient) {
		m.On("Get", mock.Anything, "inventory:segment:AC101").Return(redis.NewStringResult("", redis.Nil))
	}, Snapshot{}, true))

	t.Run("corrupt_payload", getSnapshotRequest("AC101", func(m *MockRedisClient) {
		m.On("Get", mock.Anything, "inventory:segment:AC101").Return(redis.NewStringResult("{", nil))
	}, Snapshot{}, true))
}

func TestSnapshotOf(t *testing.T) {
	seg, err := airline.NewFlightSegment(airline.SegmentParams{
		FlightID:      "AC101",
		Departure:     takenAt,
		Arrival:       takenAt.Add(90 * time.Minute),
		BaseCostPerKm: airline.DefaultBaseCostPerKm,
		DistanceKm:    500,
		DepAirportID:  "YYZ",
		ArrAirportID:  "YUL",
	})
	require.NoError(t, err)

	_, err = seg.BookSeat(100001, airline.Business)
	require.NoError(t, err)

	got := SnapshotOf(seg, takenAt)

	assert.Equal(t, 22, got.Capacity[airline.Business])
	assert.Equal(t, 21, got.Availability[airline.Business])
	assert.Equal(t, 150, got.Availability[airline.Economy])
	assert.Equal(t, 1, got.Passengers)
}

func TestRateLimiter_Allow_Closure(t *testing.T) {
	allowRequest := func(perMinute int, mockSetup func(m *MockRateAllower), want, wantErr bool) func(t *testing.T) {
		return func(t *testing.T) {
			m := NewMockRateAllower(t)
			mockSetup(m)

			got, err := NewRateLimiter(m, perMinute).Allow(context.Background(), 100001)
			if (err != nil) != wantErr {
				t.Fatalf("Allow error = %v, wantErr %v", err, wantErr)
			}
			assert.Equal(t, want, got)
		}
	}

	t.Run("allowed", allowRequest(5, func(m *MockRateAllower) {
		m.On("Allow", mock.Anything, "limit:booking:100001", redis_rate.PerMinute(5)).
			Return(&redis_rate.Result{Allowed: 1, Remaining: 4}, nil)
	}, true, false))

	t.Run("exhausted", allowRequest(5, func(m *MockRateAllower) {
		m.On("Allow", mock.Anything, "limit:booking:100001", redis_rate.PerMinute(5)).
			Return(&redis_rate.Result{Allowed: 0}, nil)
	}, false, false))

	t.Run("redis_error", allowRequest(5, func(m *MockRateAllower) {
		m.On("Allow", mock.Anything, "limit:booking:100001", redis_rate.PerMinute(5)).
			Return(nil, errors.New("connection refused"))
	}, false, true))

	t.Run("disabled", allowRequest(0, func(m *MockRateAllower) {}, true, false))
}
