// Package navigation models the app tabs, the navigation stack and modal
// presentation, driven by deep links.
package navigation
