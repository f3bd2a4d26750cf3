// Package translation pushes locale files to the hosted localization service
// through its command-line client.
package translation
