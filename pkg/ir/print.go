package ir

import "github.com/kr/pretty"

// Dump renders an expression tree in full for debug logging and test
// failure messages.
func Dump(e Expr) string {
	return pretty.Sprint(e)
}
