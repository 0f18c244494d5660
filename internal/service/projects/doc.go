// Package projects assembles the dashboard project listing: predefined
// catalog tasks the user has touched, merged with their custom simulations,
// sorted by recency and filtered in-process.
package projects
