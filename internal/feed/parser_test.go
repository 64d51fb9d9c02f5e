package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("maps the positional columns", func(t *testing.T) {
		raw := "bloque,aula,dia,inicio,fin,materia,grupo,docente\n" +
			"33,33-101,LUNES,07:00,09:00,Cálculo Diferencial,A1,Pérez"

		events := Parse(raw)
		require.Len(t, events, 1)

		event := events[0]
		assert.Equal(t, "evt-0", event.ID)
		assert.Equal(t, "Cálculo Diferencial", event.Title)
		assert.Equal(t, "Grupo A1", event.Subtitle)
		assert.Equal(t, "Pérez", event.Instructor.Name)
		assert.Equal(t, "33-101", event.RoomID)
		assert.Equal(t, "07:00", event.StartTime)
		assert.Equal(t, "09:00", event.EndTime)
		assert.Equal(t, "33", event.Block)
		assert.Equal(t, "LUNES", event.Day)
		assert.Equal(t, "1", event.Floor)
	})

	t.Run("rejoins commas inside the subject", func(t *testing.T) {
		raw := "header\n" +
			"33,33-204,MARTES,10:00,12:00,Redes, Conmutación y Enrutamiento,B2,Gómez"

		events := Parse(raw)
		require.Len(t, events, 1)
		assert.Equal(t, "Redes, Conmutación y Enrutamiento", events[0].Title)
		assert.Equal(t, "Grupo B2", events[0].Subtitle)
		assert.Equal(t, "Gómez", events[0].Instructor.Name)
	})

	t.Run("keeps short rows with empty fields", func(t *testing.T) {
		raw := "header\n33,33-101,LUNES"

		events := Parse(raw)
		require.Len(t, events, 1)

		event := events[0]
		assert.Empty(t, event.Title)
		assert.Empty(t, event.StartTime)
		assert.Equal(t, "33-101", event.RoomID)
		// Last-two positional reads land on whatever the row has.
		assert.Equal(t, "Grupo 33-101", event.Subtitle)
	})

	t.Run("discards the header and blank input", func(t *testing.T) {
		assert.Nil(t, Parse("solo,el,encabezado"))
		assert.Nil(t, Parse(""))
		assert.Nil(t, Parse("   \n"))
	})

	t.Run("ids follow the row order", func(t *testing.T) {
		raw := "header\n" +
			"33,33-101,LUNES,07:00,09:00,Física,A,X\n" +
			"33,33-102,LUNES,09:00,11:00,Química,B,Y"

		events := Parse(raw)
		require.Len(t, events, 2)
		assert.Equal(t, "evt-0", events[0].ID)
		assert.Equal(t, "evt-1", events[1].ID)
	})

	t.Run("tolerates windows line endings", func(t *testing.T) {
		raw := "header\r\n33,33-101,LUNES,07:00,09:00,Física,A,Pérez\r\n"

		events := Parse(raw)
		require.Len(t, events, 1)
		assert.Equal(t, "Pérez", events[0].Instructor.Name)
	})
}
