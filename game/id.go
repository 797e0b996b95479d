package game

import (
	"fmt"
	"strconv"
)

// Identifier is satisfied by every player identity type. The type parameter lets generic
// code rebuild an identity from its numeric index.
type Identifier[T any] interface {
	comparable
	fmt.Stringer
	Index() int
	FromIndex(i int) T
}

// PrisonerID names the two players of a fixed two-seat roster.
type PrisonerID uint8

const (
	Alice PrisonerID = iota
	Bob
)

// Prisoners is the full fixed roster.
var Prisoners = [2]PrisonerID{Alice, Bob}

func (p PrisonerID) Index() int {
	return int(p)
}

func (PrisonerID) FromIndex(i int) PrisonerID {
	return PrisonerID(i)
}

// Other returns the opponent in a two player roster.
func (p PrisonerID) Other() PrisonerID {
	if p == Alice {
		return Bob
	}
	return Alice
}

func (p PrisonerID) String() string {
	switch p {
	case Alice:
		return "Alice"
	case Bob:
		return "Bob"
	}
	return "Prisoner(" + strconv.Itoa(int(p)) + ")"
}

// PrisonerMap keeps one value per prisoner.
type PrisonerMap[T any] struct {
	alice T
	bob   T
}

func NewPrisonerMap[T any](alice, bob T) PrisonerMap[T] {
	return PrisonerMap[T]{alice: alice, bob: bob}
}

func (m PrisonerMap[T]) Get(p PrisonerID) T {
	if p == Alice {
		return m.alice
	}
	return m.bob
}

func (m *PrisonerMap[T]) Set(p PrisonerID, v T) {
	if p == Alice {
		m.alice = v
		return
	}
	m.bob = v
}

func (m PrisonerMap[T]) String() string {
	return fmt.Sprintf("[Alice: %v | Bob: %v]", m.alice, m.bob)
}

// AgentNum identifies a member of an arbitrarily sized, numbered population.
type AgentNum uint32

func (n AgentNum) Index() int {
	return int(n)
}

func (AgentNum) FromIndex(i int) AgentNum {
	return AgentNum(i)
}

func (n AgentNum) String() string {
	return strconv.FormatUint(uint64(n), 10)
}
