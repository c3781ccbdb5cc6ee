// Package services holds the client flows that span more than one backend
// call: buying credits and account management.
package services
