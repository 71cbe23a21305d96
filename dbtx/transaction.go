package dbtx

type (
	// Transaction is an ordered sequence of commands. The zero value is an
	// empty transaction, ready to use.
	//
	// A Transaction is not safe for concurrent use; it is built and
	// committed by one goroutine, then handed off (e.g. to the Engine).
	Transaction struct {
		commands []Command
	}
)

// AddCommand appends command to the transaction.
func (x *Transaction) AddCommand(command Command) {
	if command == nil {
		panic(`dbtx: nil command`)
	}
	x.commands = append(x.commands, command)
}

// Len returns the number of commands in the transaction.
func (x *Transaction) Len() int {
	return len(x.commands)
}

// Commit executes the commands in insertion order.
func (x *Transaction) Commit() {
	for _, command := range x.commands {
		command.Execute()
	}
}

// Rollback undoes the commands in reverse insertion order, restoring each
// command's captured snapshot, so the receiver ends up in its pre-commit
// state.
func (x *Transaction) Rollback() {
	for i := len(x.commands) - 1; i >= 0; i-- {
		x.commands[i].Undo()
	}
}
