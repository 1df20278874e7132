package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/dentlab-api/internal/jalali"
	"github.com/harentsoaR/dentlab-api/internal/teeth"
)

// ConvertDate converts ?jalali=1402/01/01 or ?iso=2023-03-21 and returns both
// forms.
func (h *Handler) ConvertDate(c *gin.Context) {
	j, iso := c.Query("jalali"), c.Query("iso")
	switch {
	case j != "":
		out, ok := jalali.JalaliToISO(j)
		if !ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid Jalali date"})
			return
		}
		back, _ := jalali.ISOToJalali(out)
		c.JSON(http.StatusOK, gin.H{"iso": out, "jalali": back})
	case iso != "":
		out, ok := jalali.ISOToJalali(iso)
		if !ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid ISO date"})
			return
		}
		back, _ := jalali.JalaliToISO(out)
		c.JSON(http.StatusOK, gin.H{"iso": back, "jalali": out})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide jalali or iso"})
	}
}

// PreviewTeeth applies one chart interaction to a hidden-field value and
// returns what the chart would show: ?codes=11,21&toggle=12 or &bulk=clear.
// With &notes=... it also returns the notes as they would be submitted.
func (h *Handler) PreviewTeeth(c *gin.Context) {
	sel := teeth.NewSelection(c.Query("codes"))

	if raw := c.Query("toggle"); raw != "" {
		code, err := teeth.ParseCode(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		_, _ = sel.Toggle(code.Quadrant(), code.Position())
	}
	if action := c.Query("bulk"); action != "" && !sel.Bulk(action) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown bulk action"})
		return
	}

	csv := sel.CSV()
	summary, empty := teeth.Summary(csv)
	resp := gin.H{"codes": csv, "summary": summary, "empty": empty}
	if notes, ok := c.GetQuery("notes"); ok {
		resp["notes"] = teeth.SyncNotes(notes, csv)
	}
	c.JSON(http.StatusOK, resp)
}
