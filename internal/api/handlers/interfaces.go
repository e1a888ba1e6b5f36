package handlers

import "github.com/gin-gonic/gin"

// UserHandlerInterface defines the methods needed by the auth routes.
type UserHandlerInterface interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	Verify(c *gin.Context)
	Logout(c *gin.Context)
}

// JobHandlerInterface defines the methods needed by the job routes.
type JobHandlerInterface interface {
	ListJobs(c *gin.Context)
	ListMyJobs(c *gin.Context)
	GetJobByID(c *gin.Context)
	CreateJob(c *gin.Context)
	UpdateJob(c *gin.Context)
	DeleteJob(c *gin.Context)
}

// ApplicationHandlerInterface defines the methods needed by the application routes.
type ApplicationHandlerInterface interface {
	CreateApplication(c *gin.Context)
	ListMyApplications(c *gin.Context)
	ListEmployerApplications(c *gin.Context)
	ListJobApplications(c *gin.Context)
	GetApplication(c *gin.Context)
	UpdateApplicationStatus(c *gin.Context)
	DeleteApplication(c *gin.Context)
	JobSeekerStats(c *gin.Context)
	EmployerStats(c *gin.Context)
}

// Ensure handlers implements the interface (compile-time check)
var _ UserHandlerInterface = (*UserHandler)(nil)
var _ JobHandlerInterface = (*JobHandler)(nil)
var _ ApplicationHandlerInterface = (*ApplicationHandler)(nil)
