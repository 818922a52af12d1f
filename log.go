package webdriver

import "log"

// defaultLogf is the fallback logger for sessions created without
// WithLogf.
func defaultLogf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

// defaultErrf is the fallback error reporter for sessions created without
// WithErrorf. Implicit-cleanup failures go through this path.
func defaultErrf(format string, v ...interface{}) {
	log.Printf("ERROR: "+format, v...)
}
