package timetable_test

import (
	"errors"
	"strings"
	"testing"

	"hms-service/internal/timetable"
	"hms-service/pkg/response"

	"github.com/stretchr/testify/require"
)

func TestNew_AllSlotsFree(t *testing.T) {
	tt := timetable.New()

	for h := 0; h < timetable.HoursInDay; h++ {
		require.Equal(t, timetable.StatusFree, tt.At(h))
	}
	require.Equal(t, strings.Repeat("#", 24), tt.Summary())
}

func TestSetRange_SingleHour(t *testing.T) {
	for h := 0; h < timetable.HoursInDay; h++ {
		tt := timetable.New()
		tt.SetRange(h, h, timetable.StatusWork)

		require.Equal(t, timetable.StatusWork, tt.At(h))
	}
}

func TestSetRange_ClampsOutOfBoundsHours(t *testing.T) {
	tt := timetable.New()

	tt.SetRange(-5, 2, timetable.StatusWork)

	require.Equal(t, timetable.StatusWork, tt.At(0))
	require.Equal(t, timetable.StatusWork, tt.At(1))
	require.Equal(t, timetable.StatusWork, tt.At(2))
	require.Equal(t, timetable.StatusFree, tt.At(3))

	tt.SetRange(22, 40, "OnCall")

	require.Equal(t, "OnCall", tt.At(22))
	require.Equal(t, "OnCall", tt.At(23))
}

func TestSetRange_StartAfterEnd_NoMutation(t *testing.T) {
	tt := timetable.New()
	before := tt.Hours()

	tt.SetRange(10, 5, timetable.StatusWork)

	require.Equal(t, before, tt.Hours())
}

func TestSetRange_AcceptsArbitraryStatus(t *testing.T) {
	tt := timetable.New()

	tt.SetRange(8, 8, "Surgery")

	require.Equal(t, "Surgery", tt.At(8))
	require.Equal(t, "X", tt.Summary()[8:9])
}

func TestBook_SucceedsOnlyOnWork(t *testing.T) {
	tt := timetable.New()
	tt.SetRange(10, 10, timetable.StatusWork)

	err := tt.Book(10, timetable.StatusAppointment)
	require.NoError(t, err)
	require.Equal(t, timetable.StatusAppointment, tt.At(10))

	// already booked
	err = tt.Book(10, timetable.StatusAppointment)
	require.Error(t, err)
	require.True(t, errors.Is(err, response.ErrSlotNotAvailable))
	require.Equal(t, timetable.StatusAppointment, tt.At(10))
}

func TestBook_FailsOnFreeSlot(t *testing.T) {
	tt := timetable.New()

	err := tt.Book(5, timetable.StatusAppointment)

	require.True(t, errors.Is(err, response.ErrSlotNotAvailable))
	require.Equal(t, timetable.StatusFree, tt.At(5))
}

func TestBook_FailsOutOfRange(t *testing.T) {
	tt := timetable.New()
	tt.SetRange(0, 23, timetable.StatusWork)

	require.True(t, errors.Is(tt.Book(-1, timetable.StatusAppointment), response.ErrSlotNotAvailable))
	require.True(t, errors.Is(tt.Book(24, timetable.StatusAppointment), response.ErrSlotNotAvailable))
}

func TestSummary_MarksNonFreeAsOccupied(t *testing.T) {
	tt := timetable.New()
	tt.SetRange(9, 17, timetable.StatusWork)

	summary := tt.Summary()

	require.Len(t, summary, 24)
	require.Equal(t, strings.Repeat("#", 9)+strings.Repeat("X", 9)+strings.Repeat("#", 6), summary)
}
