package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrAayushCode/sisyphus-engine-sub000/internal/engine"
	"github.com/MrAayushCode/sisyphus-engine-sub000/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the full player sheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			g, cleanup, err := openGame(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			st := g.State()
			p := st.Player
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconBoulder, "Sisyphus"))
			fmt.Fprintf(out, "%s %d  %s %s %d/%d  %s %d\n",
				ui.Key.Render("Level"), p.Level,
				ui.IconHeart, ui.Bar(p.Health, p.MaxHealth, 20), p.Health, p.MaxHealth,
				ui.IconGold, p.Gold)
			fmt.Fprintf(out, "%s %s %d/%d\n", ui.Key.Render("XP"), ui.Bar(p.XP, p.XPToNext, 20), p.XP, p.XPToNext)
			fmt.Fprintln(out, ui.LabelValue("Rival damage", p.RivalDamage))
			fmt.Fprintf(out, "%s %d currency, %d deaths\n", ui.Key.Render("Legacy:"), p.Legacy.Currency, p.Legacy.Deaths)

			mod := g.Modifier()
			fmt.Fprintf(out, "%s %s — %s\n", mod.Icon, ui.Key.Render(mod.Name), ui.Muted.Render(mod.Desc))

			if g.Meditation().LockedDown() {
				fmt.Fprintf(out, "%s for %s (%d/%d cycles)\n", ui.BadgeLockdown,
					g.Meditation().Remaining().Round(time.Second), st.Meditation.Cycles, 10)
			}
			if now := time.Now(); now.Before(p.ShieldUntil) {
				fmt.Fprintln(out, ui.Good.Render("Shield active"))
			} else if now.Before(p.RestDayUntil) {
				fmt.Fprintln(out, ui.Muted.Render("Rest day"))
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("🎯 Today"))
			fmt.Fprintln(out, ui.LabelValue("Quests done", p.TasksDoneToday))
			fmt.Fprintln(out, ui.LabelValue("Damage taken", p.DamageToday))
			fmt.Fprintln(out, ui.LabelValue("Streak", st.Analytics.Streak))
			for _, m := range st.Missions.Missions {
				def, ok := engine.MissionDefByID(m.DefID)
				if !ok {
					continue
				}
				mark := ui.Warn.Render(fmt.Sprintf("%d/%d", m.Progress, def.Target))
				if m.Done {
					mark = ui.Good.Render("done")
				}
				fmt.Fprintf(out, "- %s %s\n", def.Name, mark)
			}
			fmt.Fprintln(out, "")

			if skills := g.SkillsByLevel(); len(skills) > 0 {
				fmt.Fprintln(out, ui.H2.Render("🛠 Skills"))
				for _, s := range skills {
					line := fmt.Sprintf("- %s: lvl %d (xp %.1f)", s.Name, s.Level, s.XP)
					if s.Rust > 0 {
						line += " " + ui.Warn.Render(fmt.Sprintf("rust %d", s.Rust))
					}
					fmt.Fprintln(out, line)
				}
				fmt.Fprintln(out, "")
			}

			fmt.Fprintln(out, ui.H2.Render("👹 Bosses"))
			for _, b := range st.Analytics.Bosses {
				switch {
				case b.Defeated:
					fmt.Fprintf(out, "- %s (lvl %d) %s\n", b.Name, b.Level, ui.Good.Render("defeated"))
				case b.Unlocked:
					fmt.Fprintf(out, "- %s (lvl %d) %s\n", b.Name, b.Level, ui.Warn.Render("awaits"))
				default:
					fmt.Fprintf(out, "- %s (lvl %d) %s\n", b.Name, b.Level, ui.Muted.Render("locked"))
				}
			}
			if st.Analytics.Won {
				fmt.Fprintln(out, ui.Gold.Render(ui.IconTrophy+" The summit is yours."))
			}
			return nil
		},
	}

	return cmd
}
