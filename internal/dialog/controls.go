package dialog

import "github.com/yumosx/loft/internal/toolbar"

func init() {
	toolbar.Register("dialog.close", toolbar.Control{
		Icon:  "cancel",
		Label: "Close",
		Exec: func(view any) error {
			if d, ok := view.(*Dialog); ok {
				d.Close()
			}
			return nil
		},
	})
	toolbar.Register("dialog.fullsize", toolbar.Control{
		Icon:  "fullsize",
		Label: "Fullsize",
		Exec: func(view any) error {
			if d, ok := view.(*Dialog); ok {
				d.ToggleFullSize()
			}
			return nil
		},
	})
}
