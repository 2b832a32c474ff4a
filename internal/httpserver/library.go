package httpserver

import (
	"net/http"

	lendingsvc "storelib/internal/service/lending"
	librarysvc "storelib/internal/service/library"

	"github.com/gin-gonic/gin"
)

type borrowRequest struct {
	MemberID string `json:"memberId"`
	BookID   string `json:"bookId"`
}

func (h *handlers) createAuthor(c *gin.Context) {
	var in librarysvc.AuthorInput
	if !bindJSON(c, &in) {
		return
	}
	a, err := h.deps.LibrarySvc.CreateAuthor(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *handlers) getAuthor(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	a, err := h.deps.LibrarySvc.GetAuthor(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *handlers) deleteAuthor(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.deps.LibrarySvc.DeleteAuthor(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) createPublisher(c *gin.Context) {
	var in librarysvc.PublisherInput
	if !bindJSON(c, &in) {
		return
	}
	p, err := h.deps.LibrarySvc.CreatePublisher(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *handlers) getPublisher(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.deps.LibrarySvc.GetPublisher(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handlers) listBooks(c *gin.Context) {
	authorID, ok := queryID(c, "authorId")
	if !ok {
		return
	}
	books, err := h.deps.LibrarySvc.ListBooks(c.Request.Context(), authorID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(books), "results": books})
}

func (h *handlers) createBook(c *gin.Context) {
	var in librarysvc.BookInput
	if !bindJSON(c, &in) {
		return
	}
	b, err := h.deps.LibrarySvc.CreateBook(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *handlers) getBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	b, err := h.deps.LibrarySvc.GetBook(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *handlers) deleteBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.deps.LibrarySvc.DeleteBook(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) listReviews(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	reviews, err := h.deps.LibrarySvc.ListReviews(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(reviews), "results": reviews})
}

func (h *handlers) addReview(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in librarysvc.ReviewInput
	if !bindJSON(c, &in) {
		return
	}
	rv, err := h.deps.LibrarySvc.AddReview(c.Request.Context(), id, in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rv)
}

func (h *handlers) registerMember(c *gin.Context) {
	var in lendingsvc.MemberInput
	if !bindJSON(c, &in) {
		return
	}
	m, err := h.deps.LendingSvc.RegisterMember(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *handlers) getMember(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	m, err := h.deps.LendingSvc.GetMember(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *handlers) deleteMember(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.deps.LendingSvc.DeleteMember(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) memberBorrows(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	list, err := h.deps.LendingSvc.ListByMember(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(list), "results": list})
}

func (h *handlers) borrow(c *gin.Context) {
	var in borrowRequest
	if !bindJSON(c, &in) {
		return
	}
	st, err := h.deps.LendingSvc.Borrow(c.Request.Context(), in.MemberID, in.BookID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.metrics.Event("borrow")
	c.JSON(http.StatusCreated, st)
}

func (h *handlers) getBorrow(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	st, err := h.deps.LendingSvc.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *handlers) returnBorrow(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	st, err := h.deps.LendingSvc.Return(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.metrics.Event("return")
	c.JSON(http.StatusOK, st)
}
