package timetable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDay(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"MIÉRCOLES", "MIERCOLES"},
		{"miercoles", "MIERCOLES"},
		{" Miércoles ", "MIERCOLES"},
		{"SÁBADO", "SABADO"},
		{"lunes", "LUNES"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeDay(tc.in))
		})
	}
}

func TestSameDay(t *testing.T) {
	assert.True(t, SameDay("MIÉRCOLES", "miercoles"))
	assert.True(t, SameDay(" Sábado", "SABADO "))
	assert.False(t, SameDay("LUNES", "MARTES"))
}

func TestDayNameFor(t *testing.T) {
	assert.Equal(t, DayLunes, DayNameFor(time.Monday))
	assert.Equal(t, DayMiercoles, DayNameFor(time.Wednesday))
	assert.Equal(t, DayDomingo, DayNameFor(time.Sunday))
}
