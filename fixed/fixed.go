// Package fixed provides fixed-point arithmetic types used by the text
// engine and its font tables.
package fixed

//go:generate go run mkfixed.go Int14_2 int16
type Int14_2 int16

//go:generate go run mkfixed.go Int10_6 int16
type Int10_6 int16
