// Package schema provides the principal schematics for all other packages. It
// defines the disk and machine structures recorded in the catalog and provides
// implementations for handling (Unix-based) operating system calls. The
// package serves as a foundational layer for the other packages.
package schema
