package entity

import (
	"snake-arcade/game/types"

	"golang.org/x/exp/slices"
)

// Snake body is stored head first
type Snake struct {
	Body      []types.Point
	Direction types.Direction
	pending   types.Direction
}

// NewSnake lays out a straight snake of the given length behind head,
// facing dir
func NewSnake(head types.Point, dir types.Direction, length int) *Snake {
	body := make([]types.Point, 0, length)
	back := dir.Opposite()
	p := head
	for i := 0; i < length; i++ {
		body = append(body, p)
		p = p.Add(back)
	}
	return &Snake{
		Body:      body,
		Direction: dir,
		pending:   dir,
	}
}

func (s *Snake) GetHead() types.Point {
	return s.Body[0]
}

func (s *Snake) Len() int {
	return len(s.Body)
}

// SetDirection buffers dir for the next tick. The exact reverse of the
// active direction is rejected.
func (s *Snake) SetDirection(dir types.Direction) bool {
	if !dir.Valid() || dir.IsOpposite(s.Direction) {
		return false
	}
	s.pending = dir
	return true
}

// CommitDirection makes the buffered direction active
func (s *Snake) CommitDirection() {
	if s.pending.IsOpposite(s.Direction) {
		s.pending = s.Direction
		return
	}
	s.Direction = s.pending
}

// NextHead is the cell the head moves into on the next step
func (s *Snake) NextHead() types.Point {
	return s.GetHead().Add(s.Direction)
}

// Occupies reports whether any segment sits on p
func (s *Snake) Occupies(p types.Point) bool {
	return slices.Contains(s.Body, p)
}

func (s *Snake) Move(newHead types.Point) {
	s.Body = append(s.Body, types.Point{})
	copy(s.Body[1:], s.Body)
	s.Body[0] = newHead
}

func (s *Snake) RemoveTail() {
	if len(s.Body) > 0 {
		s.Body = s.Body[:len(s.Body)-1]
	}
}

// Shrink drops up to n tail segments without going below minLen.
// It returns the number of segments removed.
func (s *Snake) Shrink(n, minLen int) int {
	removable := len(s.Body) - minLen
	if removable <= 0 {
		return 0
	}
	if n > removable {
		n = removable
	}
	s.Body = s.Body[:len(s.Body)-n]
	return n
}

// Cells returns a copy of the body
func (s *Snake) Cells() []types.Point {
	return slices.Clone(s.Body)
}
