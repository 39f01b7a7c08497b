package routes

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"portal/mailer"
	"portal/models"
	"portal/verification"
)

/* -------------------- Events -------------------- */

// GET /events
// Upcoming events only, soonest first, capped for the sidebar.
func (d *deps) getEvents(c *gin.Context) {
	events, err := d.events.GetUpcoming(time.Now().UTC(), 5)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch events. Try again later."})
		return
	}
	if events == nil {
		events = []models.Event{}
	}
	c.JSON(http.StatusOK, events)
}

// GET /events/:id
func (d *deps) getEvent(c *gin.Context) {
	id := c.Param("id")
	event, err := d.events.GetByID(id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch event. Try again later."})
		return
	}
	c.JSON(http.StatusOK, event)
}

// POST /events
func (d *deps) createEvent(c *gin.Context) {
	var event models.Event
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}
	if event.Title == "" || event.DateTime.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Title and dateTime are required."})
		return
	}

	event.UserID = c.GetInt64("userId")
	if event.ID == "" {
		event.ID = uuid.NewString() // aligns with registrations(event_id UUID)
	}

	if err := d.events.Create(&event); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not create event. Try again later."})
		return
	}

	if d.inv != nil {
		d.inv.PurgeEventsList(c)
		d.inv.PurgeEventItems(c)
	}

	c.JSON(http.StatusCreated, gin.H{"message": "event created!", "event": event})
}

// PUT /events/:id
func (d *deps) updateEvent(c *gin.Context) {
	id := c.Param("id")
	userId := c.GetInt64("userId")

	old, err := d.events.GetByID(id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch the event. Try again later."})
		return
	}
	if old.UserID != userId {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized to update event."})
		return
	}

	var incoming models.Event
	if err := c.ShouldBindJSON(&incoming); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}
	incoming.ID = id
	incoming.UserID = old.UserID

	if err := d.events.Update(&incoming); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not update event. Try again later."})
		return
	}

	if d.inv != nil {
		d.inv.PurgeEventsList(c)
		d.inv.PurgeEventItems(c)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event updated successfully!"})
}

// DELETE /events/:id
// Purges the item cache too so a detail view re-read gets a 404 instead of
// a cached copy of the deleted event.
func (d *deps) deleteEvent(c *gin.Context) {
	id := c.Param("id")
	userId := c.GetInt64("userId")

	ev, err := d.events.GetByID(id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch the event. Try again later."})
		return
	}
	if ev.UserID != userId {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized to delete event."})
		return
	}

	if err := d.events.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not delete the event."})
		return
	}

	if d.inv != nil {
		d.inv.PurgeEventsList(c)
		d.inv.PurgeEventItems(c)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully!"})
}

/* --------------- Registration flow ------------------ */

// POST /events/:id/register
// Begins verification: a fresh 6-digit code is emailed to the account
// address and held until the user echoes it back on /verify. The response
// does not wait on delivery; it reports where the code was sent so the
// client can prompt for it.
func (d *deps) registerForEvent(c *gin.Context) {
	userId := c.GetInt64("userId")
	email := c.GetString("userEmail")
	eventId := c.Param("id")

	event, err := d.events.GetByID(eventId)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch event."})
		return
	}

	if err := d.verifier.Begin(c.Request.Context(), userId, email, event); err != nil {
		if errors.Is(err, mailer.ErrEmptyRecipient) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "No email address on account; cannot send verification code."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not start registration. Try again later."})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message": "Verification code sent!",
		"email":   email,
		"eventId": event.ID,
	})
}

// POST /events/:id/verify
func (d *deps) verifyRegistration(c *gin.Context) {
	userId := c.GetInt64("userId")
	eventId := c.Param("id")

	var req struct {
		Code string `json:"code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}
	// an empty submission is not an attempt at all
	if strings.TrimSpace(req.Code) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Verification code is required."})
		return
	}

	if err := d.verifier.Submit(c.Request.Context(), userId, eventId, req.Code); err != nil {
		if errors.Is(err, verification.ErrInvalidCode) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid verification code."})
			return
		}
		if errors.Is(err, models.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"message": "Already registered."})
			return
		}
		// transient commit failure; the pending code survives for a retry
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not complete registration. Try again later."})
		return
	}

	if d.inv != nil {
		d.inv.PurgeEventsList(c)
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Registered!"})
}

// DELETE /events/:id/verification
func (d *deps) abandonVerification(c *gin.Context) {
	d.verifier.Abandon(c.GetInt64("userId"), c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "Verification cancelled."})
}

// DELETE /events/:id/register
// Unregistering needs no code.
func (d *deps) cancelRegistration(c *gin.Context) {
	userId := c.GetInt64("userId")
	eventId := c.Param("id")

	if err := d.regs.Cancel(userId, eventId); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not cancel registration."})
		return
	}

	if d.inv != nil {
		d.inv.PurgeEventsList(c)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cancelled!"})
}

// GET /registrations
// The refresh read: event ids the current user is registered for.
func (d *deps) getRegistrations(c *gin.Context) {
	ids, err := d.regs.ListByUser(c.GetInt64("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch registrations. Try again later."})
		return
	}
	if ids == nil {
		ids = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"eventIds": ids})
}
