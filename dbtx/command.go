// Package dbtx provides a command/transaction layer over the extendible
// hash table: each command captures a memento of the receiver before its
// mutation, transactions replay commands in order and undo them in reverse,
// and a process-wide engine queues completed transactions for processing.
package dbtx

import (
	"github.com/Hoshiningen/concurrent-data-structures/extendible"
)

type (
	// Command is a reversible mutation of an extendible.Table. Execute
	// captures a snapshot of the receiver before mutating it; Undo
	// reinstalls that snapshot. Undo before the first Execute is invalid.
	Command interface {
		Execute()
		Undo()
	}

	// InsertCommand inserts an item. Instances must be initialized using
	// the NewInsertCommand factory.
	InsertCommand struct {
		receiver *extendible.Table
		memento  *extendible.Memento
		item     int
	}

	// EraseCommand erases an item. Instances must be initialized using
	// the NewEraseCommand factory.
	EraseCommand struct {
		receiver *extendible.Table
		memento  *extendible.Memento
		item     int
	}

	// UpdateCommand replaces an item with another. Instances must be
	// initialized using the NewUpdateCommand factory.
	UpdateCommand struct {
		receiver *extendible.Table
		memento  *extendible.Memento
		oldItem  int
		newItem  int
	}
)

var (
	// compile time assertions

	_ Command = (*InsertCommand)(nil)
	_ Command = (*EraseCommand)(nil)
	_ Command = (*UpdateCommand)(nil)
)

// NewInsertCommand initializes an InsertCommand against receiver. A panic
// will occur if receiver is nil.
func NewInsertCommand(receiver *extendible.Table, item int) *InsertCommand {
	if receiver == nil {
		panic(`dbtx: nil receiver`)
	}
	return &InsertCommand{receiver: receiver, item: item}
}

// Execute snapshots the receiver, then inserts the item.
func (x *InsertCommand) Execute() {
	x.memento = x.receiver.CreateMemento()
	x.receiver.Insert(x.item)
}

// Undo reinstalls the snapshot captured by Execute.
func (x *InsertCommand) Undo() {
	x.receiver.SetMemento(x.memento)
}

// NewEraseCommand initializes an EraseCommand against receiver. A panic
// will occur if receiver is nil.
func NewEraseCommand(receiver *extendible.Table, item int) *EraseCommand {
	if receiver == nil {
		panic(`dbtx: nil receiver`)
	}
	return &EraseCommand{receiver: receiver, item: item}
}

// Execute snapshots the receiver, then erases the item.
func (x *EraseCommand) Execute() {
	x.memento = x.receiver.CreateMemento()
	x.receiver.Erase(x.item)
}

// Undo reinstalls the snapshot captured by Execute.
func (x *EraseCommand) Undo() {
	x.receiver.SetMemento(x.memento)
}

// NewUpdateCommand initializes an UpdateCommand against receiver. A panic
// will occur if receiver is nil.
func NewUpdateCommand(receiver *extendible.Table, oldItem, newItem int) *UpdateCommand {
	if receiver == nil {
		panic(`dbtx: nil receiver`)
	}
	return &UpdateCommand{receiver: receiver, oldItem: oldItem, newItem: newItem}
}

// Execute snapshots the receiver, then replaces oldItem with newItem.
func (x *UpdateCommand) Execute() {
	x.memento = x.receiver.CreateMemento()
	x.receiver.Update(x.oldItem, x.newItem)
}

// Undo reinstalls the snapshot captured by Execute.
func (x *UpdateCommand) Undo() {
	x.receiver.SetMemento(x.memento)
}
