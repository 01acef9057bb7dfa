package coordinator

import (
	"github.com/bnema/dockgrid/internal/domain/entity"
)

// GroupGeometry is the placement of one group after layout.
type GroupGeometry struct {
	Group    entity.GroupID
	Location entity.GroupLocation
	Box      entity.Box
	Panels   int
	Active   entity.PanelID
	Visible  bool
}

// Geometry returns the placement of every group in Groups order. Popout
// groups whose window geometry is unknown are left out.
func (c *DockingController) Geometry() []GroupGeometry {
	views := c.orderedViews()
	out := make([]GroupGeometry, 0, len(views))
	for _, v := range views {
		box, err := c.GroupBox(v.group.ID)
		if err != nil {
			continue
		}
		geo := GroupGeometry{
			Group:    v.group.ID,
			Location: v.group.Location(),
			Box:      box,
			Panels:   v.group.Size(),
			Visible:  box.Width > 0 && box.Height > 0,
		}
		if p := v.group.ActivePanel(); p != nil {
			geo.Active = p.ID
		}
		out = append(out, geo)
	}
	return out
}
