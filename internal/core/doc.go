// Package core defines the essential interfaces and data structures shared by
// the review gateway and its clients. Implementations live in other packages
// so the HTTP layer, the model providers and the terminal client stay
// decoupled from each other.
package core
