// Package jobs provides scheduled background tasks for the order simulator.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic status sweeps that drive order lifecycles.
//
// # Available Jobs
//
// 1. StatusSweepJob - Runs on a configurable period to advance every order
// whose automatic status update is due.
//
// # Usage
//
//	job := jobs.NewStatusSweepJob(advanceHandler, 60*time.Second, logger)
//
//	if err := job.Start(); err != nil {
//		log.Fatal("Failed to start status sweep:", err)
//	}
//	defer job.Stop()
//
// The job also backs the scheduler HTTP endpoints: Status reports whether
// the timer is running and when the next sweep fires, and TriggerUpdate
// runs one sweep synchronously on demand.
//
// # Error Handling
//
// A failing sweep is logged and the timer keeps running; per-order failures
// are already contained inside the sweep handler. Stop halts the timer but
// lets an in-flight sweep finish.
package jobs
