// Package profile turns learning-profile scores into the results deck sent
// to parents.
package profile
