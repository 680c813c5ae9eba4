package race

import (
	"errors"
	"fmt"
)

var (
	// ErrNilPredicate 未提供谓词
	ErrNilPredicate = errors.New("race: nil predicate")
	// ErrNilOperation 操作为 nil，按失败处理
	ErrNilOperation = errors.New("race: nil operation")
)

// PredicateError 谓词在检查某个结果时 panic
type PredicateError struct {
	Index int
	Value any
}

func (e *PredicateError) Error() string {
	return fmt.Sprintf("race: predicate panicked on operation %d: %v", e.Index, e.Value)
}

func (e *PredicateError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// OperationPanicError 操作本身 panic，按失败处理
type OperationPanicError struct {
	Index int
	Value any
}

func (e *OperationPanicError) Error() string {
	return fmt.Sprintf("race: operation %d panicked: %v", e.Index, e.Value)
}

func (e *OperationPanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
