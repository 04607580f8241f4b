// Package segment splits unstructured captured text into individual
// sentences. It is a pure, stateless transformation: the same input always
// yields the same ordered sentence list, and it is safe to call from any
// number of goroutines without synchronization.
package segment
