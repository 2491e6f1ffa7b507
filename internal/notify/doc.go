// Package notify tells feeders about writes made through the API.
//
// After a feeding event or schedule change is committed, a JSON message is
// published to the feeder's MQTT topics so firmware can refresh its local
// copy without polling:
//
//	{prefix}/{feeder_id}/events    one message per recorded event
//	{prefix}/{feeder_id}/schedule  {"action":"created"|"deleted","time":"HH:MM",...}
//
// Publishing is best effort. The database is the source of truth and a
// failed publish never fails the HTTP request.
package notify
