// Package maintenance implements the client, equipment and service
// operations exposed by the API. Equipment mutations drive the schedule
// reconciler; service reads are joined with their equipment and client.
package maintenance
