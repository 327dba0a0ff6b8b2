// Package service contains the application's business logic, coordinating
// between the HTTP layer, the delayed-task scheduler, and the external
// generation adapter. Its central type is the JobTracker, which owns the
// credit balance and the job lifecycle collections.
package service
