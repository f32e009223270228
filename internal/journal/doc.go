// Package journal keeps a local sqlite record of every call made to the
// labeling service.
package journal
