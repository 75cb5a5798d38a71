package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type layoutRequest struct {
	Name string `json:"name" binding:"required,max=64"`
	boardSpec
}

func (s *Server) listLayouts(c *gin.Context) {
	list, err := s.store.List(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"layouts": list})
}

func (s *Server) createLayout(c *gin.Context) {
	var req layoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, badRequest(err))
		return
	}
	l, err := s.layoutOf(req.boardSpec)
	if err != nil {
		s.fail(c, err)
		return
	}
	rec, err := s.store.Create(c.Request.Context(), req.Name, l)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (s *Server) getLayout(c *gin.Context) {
	rec, err := s.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) updateLayout(c *gin.Context) {
	var req layoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, badRequest(err))
		return
	}
	l, err := s.layoutOf(req.boardSpec)
	if err != nil {
		s.fail(c, err)
		return
	}
	rec, err := s.store.Update(c.Request.Context(), c.Param("id"), req.Name, l)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) deleteLayout(c *gin.Context) {
	if err := s.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
