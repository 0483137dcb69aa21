package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"go.uber.org/zap"

	"github.com/plus3/tetris/board"
	"github.com/plus3/tetris/piece"
	"github.com/plus3/tetris/placement"
)

// Snapshot keys. Every key is required when loading.
const (
	KeyCurrentPiece    = "currentPieceIndex"
	KeyCurrentRotation = "currentPieceRotation"
	KeyHeldPiece       = "heldPieceIndex"
	KeyElapsed         = "currentTimeInSeconds"
	KeyBoard           = "tetrisMap"
	KeyTotalScore      = "totalScore"
	KeyLevel           = "currentLevel"
	KeyLines           = "totalLinesBrokenSinceLastLevelUp"
	KeyPosition        = "currentPiecePosition"
	KeyNextQueue       = "stackNextPieces"
)

var snapshotKeys = []string{
	KeyCurrentPiece,
	KeyCurrentRotation,
	KeyHeldPiece,
	KeyElapsed,
	KeyBoard,
	KeyTotalScore,
	KeyLevel,
	KeyLines,
	KeyPosition,
	KeyNextQueue,
}

// Snapshot is the persisted form of an in-progress game. Board holds the
// settled cells only: no active piece and no ghost.
type Snapshot struct {
	CurrentPiece    piece.Kind
	CurrentRotation int
	Position        board.Point
	HeldPiece       piece.Kind
	ElapsedSeconds  int
	Board           [][]board.Cell
	Score           Score
	NextQueue       []piece.Kind
}

// Fields encodes the snapshot as string key/value pairs. Integers are decimal;
// the board, position and next queue are JSON.
func (s Snapshot) Fields() (map[string]string, error) {
	grid, err := json.Marshal(s.Board)
	if err != nil {
		return nil, fmt.Errorf("encode board: %w", err)
	}
	pos, err := json.Marshal(s.Position)
	if err != nil {
		return nil, fmt.Errorf("encode position: %w", err)
	}
	next, err := json.Marshal(s.NextQueue)
	if err != nil {
		return nil, fmt.Errorf("encode next queue: %w", err)
	}

	return map[string]string{
		KeyCurrentPiece:    strconv.Itoa(int(s.CurrentPiece)),
		KeyCurrentRotation: strconv.Itoa(s.CurrentRotation),
		KeyHeldPiece:       strconv.Itoa(int(s.HeldPiece)),
		KeyElapsed:         strconv.Itoa(s.ElapsedSeconds),
		KeyBoard:           string(grid),
		KeyTotalScore:      strconv.Itoa(s.Score.Total),
		KeyLevel:           strconv.Itoa(s.Score.Level),
		KeyLines:           strconv.Itoa(s.Score.Lines),
		KeyPosition:        string(pos),
		KeyNextQueue:       string(next),
	}, nil
}

// ParseFields decodes the key/value form written by Fields. A missing or
// malformed value fails the whole parse with CodeCorruptSnapshot.
func ParseFields(fields map[string]string) (Snapshot, error) {
	for _, key := range snapshotKeys {
		if _, ok := fields[key]; !ok {
			return Snapshot{}, corrupt(key, "missing", nil)
		}
	}

	var s Snapshot
	ints := []struct {
		key  string
		dest *int
	}{
		{KeyCurrentRotation, &s.CurrentRotation},
		{KeyElapsed, &s.ElapsedSeconds},
		{KeyTotalScore, &s.Score.Total},
		{KeyLevel, &s.Score.Level},
		{KeyLines, &s.Score.Lines},
	}
	for _, f := range ints {
		v, err := strconv.Atoi(fields[f.key])
		if err != nil {
			return Snapshot{}, corrupt(f.key, "not an integer", err)
		}
		*f.dest = v
	}

	for key, dest := range map[string]*piece.Kind{
		KeyCurrentPiece: &s.CurrentPiece,
		KeyHeldPiece:    &s.HeldPiece,
	} {
		v, err := strconv.Atoi(fields[key])
		if err != nil {
			return Snapshot{}, corrupt(key, "not an integer", err)
		}
		*dest = piece.Kind(v)
	}

	if err := json.Unmarshal([]byte(fields[KeyBoard]), &s.Board); err != nil {
		return Snapshot{}, corrupt(KeyBoard, "malformed grid", err)
	}
	if err := json.Unmarshal([]byte(fields[KeyPosition]), &s.Position); err != nil {
		return Snapshot{}, corrupt(KeyPosition, "malformed position", err)
	}
	if err := json.Unmarshal([]byte(fields[KeyNextQueue]), &s.NextQueue); err != nil {
		return Snapshot{}, corrupt(KeyNextQueue, "malformed queue", err)
	}
	return s, nil
}

// Validate checks that the snapshot describes a playable game on a
// width x height board with a next queue of nextPieces kinds.
func (s Snapshot) Validate(width, height, nextPieces int) error {
	if !s.CurrentPiece.Valid() {
		return corrupt(KeyCurrentPiece, "no active piece", nil)
	}
	if s.CurrentRotation < 0 || s.CurrentRotation >= piece.Rotations {
		return corrupt(KeyCurrentRotation, "rotation out of range", nil)
	}
	if s.HeldPiece != piece.None && !s.HeldPiece.Valid() {
		return corrupt(KeyHeldPiece, "unknown kind", nil)
	}
	if s.ElapsedSeconds < 0 {
		return corrupt(KeyElapsed, "negative", nil)
	}
	if s.Score.Total < 0 {
		return corrupt(KeyTotalScore, "negative", nil)
	}
	if s.Score.Level < 0 {
		return corrupt(KeyLevel, "negative", nil)
	}
	if s.Score.Lines < 0 || s.Score.Lines >= LinesPerLevel {
		return corrupt(KeyLines, "out of range", nil)
	}
	if len(s.NextQueue) != nextPieces {
		return corrupt(KeyNextQueue, fmt.Sprintf("holds %d kinds, want %d", len(s.NextQueue), nextPieces), nil)
	}
	if slices.ContainsFunc(s.NextQueue, func(k piece.Kind) bool { return !k.Valid() }) {
		return corrupt(KeyNextQueue, "unknown kind", nil)
	}

	b, err := board.FromCells(s.Board)
	if err != nil {
		return corrupt(KeyBoard, "invalid grid", err)
	}
	if w, h := b.Dimensions(); w != width || h != height {
		return corrupt(KeyBoard, fmt.Sprintf("grid is %dx%d, want %dx%d", w, h, width, height), nil)
	}
	if b.Count(board.Shadow) > 0 {
		return corrupt(KeyBoard, "grid holds ghost cells", nil)
	}

	active := placement.Piece{Kind: s.CurrentPiece, Rotation: s.CurrentRotation, Pos: s.Position}
	if !placement.Fits(active, b) {
		return corrupt(KeyPosition, "active piece does not fit", nil)
	}
	return nil
}

func corrupt(key, reason string, cause error) *Error {
	message := "corrupt snapshot: " + key + " " + reason
	if cause != nil {
		return WrapError(CodeCorruptSnapshot, message, cause).WithMetadata("key", key)
	}
	return NewError(CodeCorruptSnapshot, message).WithMetadata("key", key)
}

// Snapshot captures the game for persistence. The engine must have an active
// piece for the result to validate.
func (e *Engine) Snapshot() Snapshot {
	settled := e.board.Clone()
	settled.ClearShadows()

	s := Snapshot{
		CurrentPiece:   piece.None,
		HeldPiece:      e.held,
		ElapsedSeconds: e.elapsed,
		Score:          e.score,
		NextQueue:      slices.Clone(e.next),
	}
	if e.hasCurrent {
		placement.Erase(settled, e.current)
		s.CurrentPiece = e.current.Kind
		s.CurrentRotation = e.current.Rotation
		s.Position = e.current.Pos
	}
	s.Board = settled.Cells()
	return s
}

// Restore replaces the whole game with s, leaving it paused. An invalid
// snapshot leaves the engine untouched.
func (e *Engine) Restore(s Snapshot) error {
	if err := s.Validate(e.width, e.height, e.nextPieces); err != nil {
		return err
	}
	b, err := board.FromCells(s.Board)
	if err != nil {
		return corrupt(KeyBoard, "invalid grid", err)
	}

	e.board = b
	e.score = s.Score
	e.held = s.HeldPiece
	e.elapsed = s.ElapsedSeconds
	e.next = append(e.next[:0], s.NextQueue...)
	e.fast = false
	e.superFast = false
	e.current = placement.Piece{Kind: s.CurrentPiece, Rotation: s.CurrentRotation, Pos: s.Position}
	e.hasCurrent = true
	e.phase = Paused
	e.insertCurrent()

	e.events.nextPieces(e.next)
	e.events.heldPiece(e.held)
	e.events.score(e.score.Level, e.score.Total)
	e.events.elapsed(FormatElapsed(e.elapsed))
	e.events.pauseLabel(LabelPlay)
	e.events.pauseEnabled(true)
	e.events.interactions(false)
	e.events.overlay(true, true)
	e.logger.Info("game restored",
		zap.Int("score", e.score.Total),
		zap.Int("level", e.score.Level),
	)
	e.flush()
	return nil
}

// Save writes the game to the store. Nothing is saved before the game starts,
// and once the game is over the saved game is cleared instead.
func (e *Engine) Save(ctx context.Context) error {
	if e.store == nil || e.phase == Idle {
		return nil
	}
	if e.phase == GameOver {
		return e.store.Clear(ctx)
	}
	fields, err := e.Snapshot().Fields()
	if err != nil {
		return err
	}
	return e.store.Save(ctx, fields)
}

// Load replaces the game with the one in the store and pauses it. It returns
// ErrNoSnapshot when nothing is saved and a CodeCorruptSnapshot error when the
// saved game is unusable; in both cases the engine is untouched.
func (e *Engine) Load(ctx context.Context) error {
	if e.store == nil {
		return ErrNoSnapshot
	}
	fields, err := e.store.Load(ctx)
	if err != nil {
		return err
	}
	s, err := ParseFields(fields)
	if err != nil {
		return err
	}
	return e.Restore(s)
}
