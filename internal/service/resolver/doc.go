// Package resolver finds the single remote record a local file maps to.
//
// A lookup must match exactly one record. Zero or several matches fail the run
// before anything is written, so a name that is missing or not unique never
// leads to updating the wrong record.
package resolver
