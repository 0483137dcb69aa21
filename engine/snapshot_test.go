package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/tetris/board"
	"github.com/plus3/tetris/engine"
	"github.com/plus3/tetris/piece"
)

func validSnapshot(t *testing.T) engine.Snapshot {
	t.Helper()
	settled := board.New(10, 20)
	require.NoError(t, settled.Set(0, 19, board.Cell{State: board.Filled, Color: piece.ColorOf(piece.Z)}))
	return engine.Snapshot{
		CurrentPiece:    piece.T,
		CurrentRotation: 1,
		Position:        board.Point{X: 3, Y: 4},
		HeldPiece:       piece.None,
		ElapsedSeconds:  75,
		Board:           settled.Cells(),
		Score:           engine.Score{Total: 1240, Level: 1, Lines: 3},
		NextQueue:       []piece.Kind{piece.I, piece.S, piece.S, piece.L},
	}
}

func TestFieldsRoundTrip(t *testing.T) {
	want := validSnapshot(t)

	fields, err := want.Fields()
	require.NoError(t, err)
	assert.Len(t, fields, 10)
	assert.Equal(t, "5", fields[engine.KeyCurrentPiece])
	assert.Equal(t, "-1", fields[engine.KeyHeldPiece])
	assert.Equal(t, "75", fields[engine.KeyElapsed])
	assert.JSONEq(t, `{"x":3,"y":4}`, fields[engine.KeyPosition])
	assert.JSONEq(t, `[0,4,4,2]`, fields[engine.KeyNextQueue])

	got, err := engine.ParseFields(fields)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.NoError(t, got.Validate(10, 20, 4))
}

func TestParseFieldsRequiresEveryKey(t *testing.T) {
	fields, err := validSnapshot(t).Fields()
	require.NoError(t, err)

	for key := range fields {
		t.Run(key, func(t *testing.T) {
			partial := make(map[string]string, len(fields))
			for k, v := range fields {
				if k != key {
					partial[k] = v
				}
			}
			_, err := engine.ParseFields(partial)
			assert.True(t, engine.IsCode(err, engine.CodeCorruptSnapshot), "got %v", err)
		})
	}
}

func TestParseFieldsRejectsMalformedValues(t *testing.T) {
	tests := map[string]string{
		engine.KeyCurrentPiece: "T",
		engine.KeyTotalScore:   "12.5",
		engine.KeyBoard:        "[[",
		engine.KeyPosition:     "4,0",
		engine.KeyNextQueue:    `{"0":1}`,
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			fields, err := validSnapshot(t).Fields()
			require.NoError(t, err)
			fields[key] = value

			_, err = engine.ParseFields(fields)
			require.Error(t, err)
			assert.True(t, engine.IsCode(err, engine.CodeCorruptSnapshot))

			var domainErr *engine.Error
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, key, domainErr.Metadata["key"])
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*engine.Snapshot)
	}{
		{"no active piece", func(s *engine.Snapshot) { s.CurrentPiece = piece.None }},
		{"rotation out of range", func(s *engine.Snapshot) { s.CurrentRotation = 4 }},
		{"unknown held kind", func(s *engine.Snapshot) { s.HeldPiece = piece.Kind(9) }},
		{"negative elapsed", func(s *engine.Snapshot) { s.ElapsedSeconds = -1 }},
		{"negative score", func(s *engine.Snapshot) { s.Score.Total = -40 }},
		{"lines past level", func(s *engine.Snapshot) { s.Score.Lines = 10 }},
		{"short queue", func(s *engine.Snapshot) { s.NextQueue = s.NextQueue[:3] }},
		{"unknown queued kind", func(s *engine.Snapshot) { s.NextQueue[2] = piece.Kind(7) }},
		{"wrong width", func(s *engine.Snapshot) { s.Board = board.New(9, 20).Cells() }},
		{"ragged grid", func(s *engine.Snapshot) { s.Board[3] = s.Board[3][:10] }},
		{"ghost cells", func(s *engine.Snapshot) { s.Board[9][19] = board.Cell{State: board.Shadow} }},
		{"piece off board", func(s *engine.Snapshot) { s.Position = board.Point{X: 9, Y: 4} }},
		{"piece overlaps", func(s *engine.Snapshot) { s.Board[4][5] = board.Cell{State: board.Filled} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSnapshot(t)
			tt.modify(&s)
			err := s.Validate(10, 20, 4)
			assert.True(t, engine.IsCode(err, engine.CodeCorruptSnapshot), "got %v", err)
		})
	}
}

func TestValidateNamesOffendingKey(t *testing.T) {
	tests := []struct {
		key    string
		modify func(*engine.Snapshot)
	}{
		{engine.KeyTotalScore, func(s *engine.Snapshot) { s.Score.Total = -1 }},
		{engine.KeyLevel, func(s *engine.Snapshot) { s.Score.Level = -1 }},
		{engine.KeyLines, func(s *engine.Snapshot) { s.Score.Lines = -1 }},
		{engine.KeyCurrentRotation, func(s *engine.Snapshot) { s.CurrentRotation = -1 }},
		{engine.KeyPosition, func(s *engine.Snapshot) { s.Position = board.Point{X: 3, Y: 19} }},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			s := validSnapshot(t)
			tt.modify(&s)

			var domainErr *engine.Error
			require.ErrorAs(t, s.Validate(10, 20, 4), &domainErr)
			assert.Equal(t, tt.key, domainErr.Metadata["key"])
		})
	}
}

func TestRestoreRejectsInvalidSnapshot(t *testing.T) {
	e, _ := newEngine(t)
	e.Restart()
	before := e.Snapshot()

	s := validSnapshot(t)
	s.NextQueue = nil
	require.Error(t, e.Restore(s))

	assert.Equal(t, engine.Falling, e.Phase())
	assert.Equal(t, before, e.Snapshot())
}

func TestSnapshotExcludesActivePieceAndGhost(t *testing.T) {
	e, _ := newEngine(t)
	e.Restart()

	s := e.Snapshot()
	for _, column := range s.Board {
		for _, cell := range column {
			assert.Equal(t, board.Empty, cell.State)
		}
	}
	current, ok := e.Current()
	require.True(t, ok)
	assert.Equal(t, current.Kind, s.CurrentPiece)
	assert.Equal(t, current.Pos, s.Position)
}
