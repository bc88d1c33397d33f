// Package common holds small helpers shared by the internal packages.
package common
