package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloorFromRoom(t *testing.T) {
	cases := []struct {
		room string
		want string
	}{
		{"101", "1"},
		{"A102", "1"},
		{"33-204", "2"},
		{"T502", "5"},
		{"Sala 3", "3"},
		{"XYZ", "1"},
		{"", "1"},
	}
	for _, tc := range cases {
		t.Run(tc.room, func(t *testing.T) {
			assert.Equal(t, tc.want, FloorFromRoom(tc.room))
		})
	}
}

func TestColorForSubject(t *testing.T) {
	t.Run("is deterministic", func(t *testing.T) {
		first := ColorForSubject("Cálculo Diferencial")
		second := ColorForSubject("Cálculo Diferencial")
		assert.Equal(t, first, second)
	})

	t.Run("always lands in the palette", func(t *testing.T) {
		subjects := []string{"", "A", "Física", "Redes, Conmutación y Enrutamiento", "ÁÉÍÓÚ"}
		for _, subject := range subjects {
			color := ColorForSubject(subject)
			assert.Contains(t, palette[:], color, "subject %q", subject)
		}
	})

	t.Run("empty subject hashes to the first entry", func(t *testing.T) {
		assert.Equal(t, palette[0], ColorForSubject(""))
	})
}

func TestAvatarURL(t *testing.T) {
	t.Run("uses the text before the first dash", func(t *testing.T) {
		url := AvatarURL("María López - Juan Soto")
		assert.Contains(t, url, "name=Mar%C3%ADa+L%C3%B3pez")
	})

	t.Run("falls back to a generic label", func(t *testing.T) {
		assert.Contains(t, AvatarURL(""), "name=Docente")
		assert.Contains(t, AvatarURL("   "), "name=Docente")
	})

	t.Run("points at the avatar service", func(t *testing.T) {
		assert.Contains(t, AvatarURL("Pérez"), "https://ui-avatars.com/api/")
	})
}
